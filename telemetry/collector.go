package telemetry

import "github.com/pthm-cable/hunt/components"

// Collector accumulates events and turn records over a session.
// A nil Collector discards everything.
type Collector struct {
	sessionID string

	// Turn records not yet written out
	pending []TurnRecord

	// Hunger after every turn, for the session summary
	hunger []float64

	// Event counters for the session
	turns           int
	moves           int
	movesBlocked    int
	rabbitsEaten    int
	squirrelsEaten  int
	escapes         int
	noTargets       int
	repels          int
	repelsFailed    int
	wolvesDisplaced int
	levelsCleared   int
	caught          int
	starved         int
	hungerGained    float64
	hungerSpent     float64
}

// NewCollector creates a collector for one session.
func NewCollector(sessionID string) *Collector {
	return &Collector{sessionID: sessionID}
}

// SessionID returns the id stamped on every record.
func (c *Collector) SessionID() string {
	if c == nil {
		return ""
	}
	return c.sessionID
}

// Record counts a single event.
func (c *Collector) Record(ev Event) {
	if c == nil {
		return
	}
	switch ev.Type {
	case EventMove:
		c.moves++
		c.hungerSpent += ev.Amount
	case EventMoveBlocked:
		c.movesBlocked++
	case EventEat:
		if ev.Kind == components.KindRabbit {
			c.rabbitsEaten++
		} else {
			c.squirrelsEaten++
		}
		c.hungerGained += ev.Amount
	case EventEscape:
		c.escapes++
		c.hungerSpent += ev.Amount
	case EventNoTarget:
		c.noTargets++
		c.hungerSpent += ev.Amount
	case EventRepel:
		c.repels++
		c.wolvesDisplaced += ev.Count
		c.hungerSpent += ev.Amount
	case EventRepelFailed:
		c.repelsFailed++
	case EventLevelComplete:
		c.levelsCleared++
	case EventCaught:
		c.caught++
	case EventStarved:
		c.starved++
	}
}

// RecordTurn stores a turn record and samples its hunger.
func (c *Collector) RecordTurn(rec TurnRecord) {
	if c == nil {
		return
	}
	rec.SessionID = c.sessionID
	c.pending = append(c.pending, rec)
	c.hunger = append(c.hunger, rec.Hunger)
	c.turns++
}

// Drain returns the pending turn records and clears them.
func (c *Collector) Drain() []TurnRecord {
	if c == nil || len(c.pending) == 0 {
		return nil
	}
	out := c.pending
	c.pending = nil
	return out
}

// Summary produces the session statistics. outcome and reason describe how
// the session ended; level is the last level played.
func (c *Collector) Summary(outcome, reason string, level int) SessionStats {
	if c == nil {
		return SessionStats{Outcome: outcome, Reason: reason, Level: level}
	}

	mean, std, p10, p50, p90 := ComputeHungerStats(c.hunger)

	var eatRate float64
	attempts := c.rabbitsEaten + c.squirrelsEaten + c.escapes + c.noTargets
	if attempts > 0 {
		eatRate = float64(c.rabbitsEaten+c.squirrelsEaten) / float64(attempts)
	}

	return SessionStats{
		SessionID:       c.sessionID,
		Outcome:         outcome,
		Reason:          reason,
		Level:           level,
		LevelsCleared:   c.levelsCleared,
		Caught:          c.caught,
		Starved:         c.starved,
		Turns:           c.turns,
		Moves:           c.moves,
		MovesBlocked:    c.movesBlocked,
		RabbitsEaten:    c.rabbitsEaten,
		SquirrelsEaten:  c.squirrelsEaten,
		Escapes:         c.escapes,
		NoTargets:       c.noTargets,
		EatRate:         eatRate,
		Repels:          c.repels,
		RepelsFailed:    c.repelsFailed,
		WolvesDisplaced: c.wolvesDisplaced,
		HungerGained:    c.hungerGained,
		HungerSpent:     c.hungerSpent,
		HungerMean:      mean,
		HungerStd:       std,
		HungerP10:       p10,
		HungerP50:       p50,
		HungerP90:       p90,
	}
}
