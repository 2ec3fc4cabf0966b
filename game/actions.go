package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hunt/components"
	"github.com/pthm-cable/hunt/telemetry"
)

// Action is the outcome of one player command.
type Action struct {
	Command   Command
	Outcome   Outcome
	Kind      components.Kind // Prey eaten or escaped
	Displaced int             // Wolves moved by a repel
}

// ConsumeResult is the outcome of a consume attempt.
type ConsumeResult uint8

const (
	ConsumeNone     ConsumeResult = iota // Game frozen, nothing happened
	ConsumeNoTarget                      // No prey within reach
	ConsumeMiss                          // The prey escaped
	ConsumeEaten                         // The prey was eaten
)

// RepelResult is the outcome of a repel.
type RepelResult struct {
	Displaced int // Wolves that were pushed back
}

// Success reports whether at least one wolf moved.
func (r RepelResult) Success() bool {
	return r.Displaced > 0
}

// Move steps the player one cell in a cardinal direction. The target must be
// in bounds, air, and free of animals; unlike animals the player may stand
// next to walls. A successful move costs hunger.
func (g *Game) Move(dx, dy int) bool {
	if g.Frozen() {
		return false
	}
	if absInt(dx)+absInt(dy) != 1 {
		return false
	}

	target := g.player.Pos.Add(dx, dy)
	if !g.occupancy.IsFree(target.X, target.Y, ecs.Entity{}) {
		return false
	}

	g.placePlayer(target)
	g.record(telemetry.Event{Type: telemetry.EventMove, Turn: g.turn, Level: g.level, Amount: g.cfg.Hunger.MoveCost})
	g.spendHunger(g.cfg.Hunger.MoveCost)
	return true
}

// Consume tries to eat the first prey within reach. The prey may escape, in
// which case it steps directly away from the player if it can.
func (g *Game) Consume() ConsumeResult {
	result, _ := g.consume()
	return result
}

func (g *Game) consume() (ConsumeResult, components.Kind) {
	if g.Frozen() {
		return ConsumeNone, 0
	}

	target, kind, found := g.preyInReach()
	if !found {
		g.record(telemetry.Event{Type: telemetry.EventNoTarget, Turn: g.turn, Level: g.level, Amount: g.cfg.Hunger.ConsumeCost})
		g.spendHunger(g.cfg.Hunger.ConsumeCost)
		return ConsumeNoTarget, 0
	}

	if g.rng.Float64() < g.cfg.Hunger.EscapeChance {
		g.flee(target)
		g.record(telemetry.NewEscapeEvent(g.turn, g.level, kind, g.cfg.Hunger.ConsumeCost))
		g.spendHunger(g.cfg.Hunger.ConsumeCost)
		return ConsumeMiss, kind
	}

	g.removeEntity(target)
	value := g.cfg.Hunger.SquirrelValue
	if kind == components.KindRabbit {
		value = g.cfg.Hunger.RabbitValue
	}
	g.gainHunger(value)
	g.record(telemetry.NewEatEvent(g.turn, g.level, kind, value))
	return ConsumeEaten, kind
}

// preyInReach returns the first prey, in world iteration order, within the
// consume reach of the player. Reach is wider horizontally because terminal
// cells are taller than they are wide.
func (g *Game) preyInReach() (ecs.Entity, components.Kind, bool) {
	reachX, reachY := g.cfg.Hunger.ReachX, g.cfg.Hunger.ReachY

	query := g.animalFilter.Query()
	for query.Next() {
		pos, animal, _ := query.Get()
		if !animal.Kind.IsPrey() {
			continue
		}
		dx := float64(absInt(pos.X - g.player.Pos.X))
		dy := float64(absInt(pos.Y - g.player.Pos.Y))
		if dx <= reachX && dy <= reachY {
			e, kind := query.Entity(), animal.Kind
			query.Close()
			return e, kind, true
		}
	}
	return ecs.Entity{}, 0, false
}

// flee moves an escaping prey one step directly away from the player.
func (g *Game) flee(e ecs.Entity) {
	pos := g.posMap.Get(e)
	target := pos.Add(sign(pos.X-g.player.Pos.X), sign(pos.Y-g.player.Pos.Y))
	if target == *pos || !g.occupancy.CanEnter(target, e) {
		return
	}
	g.occupancy.Move(e, *pos, target)
	*pos = target
}

// RepelTier returns how far a wolf at Chebyshev distance d may be pushed.
// Closer wolves are pushed further.
func RepelTier(d int) int {
	switch {
	case d <= 3:
		return 4
	case d <= 6:
		return 3
	case d <= 9:
		return 2
	}
	return 1
}

// Repel pushes every wolf away from the player. Each wolf is displaced by at
// most its tier; the cost is charged once when any wolf moved.
func (g *Game) Repel() RepelResult {
	if g.Frozen() {
		return RepelResult{}
	}

	// Collect first, positions are updated through the mapper afterwards
	var wolves []ecs.Entity
	query := g.animalFilter.Query()
	for query.Next() {
		_, animal, _ := query.Get()
		if animal.Kind.IsPredator() {
			wolves = append(wolves, query.Entity())
		}
	}

	var res RepelResult
	for _, e := range wolves {
		pos := g.posMap.Get(e)
		target, ok := g.repelTarget(e, *pos)
		if !ok {
			continue
		}
		g.occupancy.Move(e, *pos, target)
		*pos = target
		res.Displaced++
	}

	if res.Success() {
		g.record(telemetry.NewRepelEvent(g.turn, g.level, res.Displaced, g.cfg.Hunger.RepelCost))
		g.spendHunger(g.cfg.Hunger.RepelCost)
	} else {
		g.record(telemetry.NewEvent(telemetry.EventRepelFailed, g.turn, g.level))
	}
	return res
}

// repelTarget finds where a wolf lands. Starting at the full tier distance
// along the player-to-wolf direction and shrinking toward one, the 3x3 block
// around each probe point is scanned centre first, then row-major, for a
// cell the wolf may enter that lies between 1 and tier cells from it.
func (g *Game) repelTarget(e ecs.Entity, wolf components.Position) (components.Position, bool) {
	tier := RepelTier(wolf.Chebyshev(g.player.Pos))

	dirX := float64(wolf.X - g.player.Pos.X)
	dirY := float64(wolf.Y - g.player.Pos.Y)
	length := math.Hypot(dirX, dirY)
	if length == 0 {
		return wolf, false
	}
	dirX /= length
	dirY /= length

	for t := tier; t >= 1; t-- {
		centre := wolf.Add(
			int(math.Round(dirX*float64(t))),
			int(math.Round(dirY*float64(t))),
		)
		if g.repelCandidate(e, wolf, centre, tier) {
			return centre, true
		}
		for _, off := range blockOffsets {
			c := centre.Add(off[0], off[1])
			if g.repelCandidate(e, wolf, c, tier) {
				return c, true
			}
		}
	}
	return wolf, false
}

func (g *Game) repelCandidate(e ecs.Entity, wolf, c components.Position, tier int) bool {
	d := wolf.Chebyshev(c)
	if d < 1 || d > tier {
		return false
	}
	return g.occupancy.CanEnter(c, e)
}
