package components

// Position is a cell on the world grid. X grows to the right, Y grows downward.
type Position struct {
	X, Y int
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Chebyshev returns the king-move distance between two positions.
func (p Position) Chebyshev(o Position) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// Adjacent reports whether o lies within one cell of p on both axes.
func (p Position) Adjacent(o Position) bool {
	return abs(p.X-o.X) <= 1 && abs(p.Y-o.Y) <= 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
