package game

import (
	"time"

	"github.com/pthm-cable/hunt/systems"
	"github.com/pthm-cable/hunt/telemetry"
)

// AdvanceResult summarises the world half of a turn.
type AdvanceResult struct {
	Animals systems.UpdateResult
	Decays  int // Whole decay intervals applied this turn
}

// TurnResult summarises a full turn.
type TurnResult struct {
	Turn    int
	Advance AdvanceResult
	Action  Action
	Status  Status
}

// Step runs one complete turn: the world advances, then the player acts.
func (g *Game) Step(cmd Command) TurnResult {
	adv := g.Advance()
	act := g.Act(cmd)
	return TurnResult{
		Turn:    g.turn,
		Advance: adv,
		Action:  act,
		Status:  g.status,
	}
}

// Advance runs the world half of a turn: animals move and wolves are checked
// for a catch, the win condition is tested, then hunger decays by wall-clock
// time. Any terminal state short-circuits the remaining phases. A frozen
// game does not advance.
func (g *Game) Advance() AdvanceResult {
	if g.Frozen() {
		return AdvanceResult{}
	}

	g.turn++
	g.turnOpen = true
	g.perf.StartTurn()

	var res AdvanceResult

	g.perf.StartPhase(telemetry.PhaseAnimals)
	res.Animals = g.behavior.Update(g.player.Pos)
	if res.Animals.Caught {
		g.lose(ReasonCaught)
		g.record(telemetry.NewCaughtEvent(g.turn, g.level))
	} else if g.numPrey == 0 {
		g.win()
	}

	if !g.Frozen() {
		g.perf.StartPhase(telemetry.PhaseHunger)
		res.Decays = g.decayHunger()
	}

	g.advance = res

	// Nothing left to act on: close the turn here. Otherwise stop the clock
	// until Act, so waiting for input is not timed.
	if g.Frozen() {
		g.finishTurn(Action{Command: CmdNone, Outcome: OutcomeFrozen})
	} else {
		g.perf.Pause()
	}
	return res
}

// Act applies one player command. Commands on a frozen game change nothing.
func (g *Game) Act(cmd Command) Action {
	if g.Frozen() {
		return Action{Command: cmd, Outcome: OutcomeFrozen}
	}

	g.perf.StartPhase(telemetry.PhaseAction)

	act := Action{Command: cmd}
	switch cmd {
	case CmdMoveUp, CmdMoveDown, CmdMoveLeft, CmdMoveRight:
		dx, dy, _ := cmd.Delta()
		if g.Move(dx, dy) {
			act.Outcome = OutcomeMoved
		} else {
			act.Outcome = OutcomeBlocked
			g.record(telemetry.NewEvent(telemetry.EventMoveBlocked, g.turn, g.level))
		}
	case CmdConsume:
		result, kind := g.consume()
		act.Kind = kind
		switch result {
		case ConsumeEaten:
			act.Outcome = OutcomeEaten
		case ConsumeMiss:
			act.Outcome = OutcomeEscaped
		default:
			act.Outcome = OutcomeNoTarget
		}
	case CmdRepel:
		rep := g.Repel()
		act.Displaced = rep.Displaced
		if rep.Success() {
			act.Outcome = OutcomeRepelled
		} else {
			act.Outcome = OutcomeRepelFailed
		}
	case CmdQuit:
		act.Outcome = OutcomeQuit
	default:
		act.Outcome = OutcomeNone
	}

	g.finishTurn(act)
	return act
}

// decayHunger applies one decay per whole interval elapsed since the last
// decay. The origin advances by the consumed intervals only, so partial
// intervals carry over to the next turn.
func (g *Game) decayHunger() int {
	interval := g.cfg.Hunger.DecayInterval
	elapsed := g.clock().Sub(g.lastDecay)
	if elapsed < interval {
		return 0
	}

	n := int(elapsed / interval)
	g.lastDecay = g.lastDecay.Add(time.Duration(n) * interval)
	g.spendHunger(float64(n) * g.cfg.Hunger.DecayAmount)
	return n
}

// spendHunger lowers hunger, clamped at zero. Reaching zero starves the player.
func (g *Game) spendHunger(amount float64) {
	g.player.Hunger = max(0, g.player.Hunger-amount)
	if g.player.Hunger <= 0 && !g.Frozen() {
		g.lose(ReasonStarved)
		g.record(telemetry.NewEvent(telemetry.EventStarved, g.turn, g.level))
	}
}

// gainHunger raises hunger, clamped at the maximum.
func (g *Game) gainHunger(amount float64) {
	g.player.Hunger = min(g.cfg.Hunger.Max, g.player.Hunger+amount)
}

func (g *Game) win() {
	if g.Frozen() {
		return
	}
	g.status.Won = true
	g.logger.Info("level won", "level", g.level, "turn", g.turn, "hunger", g.player.Hunger)
}

func (g *Game) lose(reason string) {
	if g.Frozen() {
		return
	}
	g.status.Lost = true
	g.status.LossReason = reason
	g.logger.Info("level lost",
		"level", g.level,
		"turn", g.turn,
		"reason", reason,
		"hunger", g.player.Hunger,
	)
}
