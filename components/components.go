// Package components defines ECS components for the simulation.
package components

// Kind distinguishes the animals living in the world.
type Kind uint8

const (
	KindRabbit Kind = iota
	KindSquirrel
	KindWolf
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRabbit:
		return "rabbit"
	case KindSquirrel:
		return "squirrel"
	case KindWolf:
		return "wolf"
	}
	return "unknown"
}

// IsPredator reports whether the kind hunts the player.
func (k Kind) IsPredator() bool {
	return k == KindWolf
}

// IsPrey reports whether the kind can be eaten and counts toward the win condition.
func (k Kind) IsPrey() bool {
	return k == KindRabbit || k == KindSquirrel
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindRabbit, KindSquirrel, KindWolf}
}
