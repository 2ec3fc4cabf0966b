package components

// Animal identifies what an entity is.
type Animal struct {
	Kind Kind
}

// Mover gates how often an entity may attempt a move.
// Speed is the number of ticks to accumulate before one attempt;
// Accumulator counts ticks since the last attempt.
type Mover struct {
	Speed       int
	Accumulator int
}

// Ready advances the accumulator by one tick and reports whether a move
// attempt is allowed. The accumulator resets when it is.
func (m *Mover) Ready() bool {
	m.Accumulator++
	if m.Accumulator < m.Speed {
		return false
	}
	m.Accumulator = 0
	return true
}
