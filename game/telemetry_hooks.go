package game

import "github.com/pthm-cable/hunt/telemetry"

// record forwards an event to the collector.
func (g *Game) record(ev telemetry.Event) {
	g.collector.Record(ev)
}

// finishTurn closes the turn opened by Advance: phase timing stops and the
// turn record is stored. Actions outside an advanced turn are not recorded.
func (g *Game) finishTurn(act Action) {
	if !g.turnOpen {
		return
	}
	g.turnOpen = false
	g.perf.EndTurn()

	g.collector.RecordTurn(telemetry.TurnRecord{
		Level:     g.level,
		Turn:      g.turn,
		Action:    act.Command.String(),
		Outcome:   act.Outcome.String(),
		Hunger:    g.player.Hunger,
		Prey:      g.numPrey,
		Wolves:    g.numWolves,
		Activated: g.advance.Animals.Activated,
		Moved:     g.advance.Animals.Moved,
		PlayerX:   g.player.Pos.X,
		PlayerY:   g.player.Pos.Y,
		Status:    statusName(g.status),
	})
}

func statusName(s Status) string {
	switch {
	case s.Won:
		return "won"
	case s.Lost:
		return "lost"
	}
	return "playing"
}
