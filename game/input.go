package game

// Command is one player intent, decoded from input by the ui package.
type Command uint8

const (
	CmdNone Command = iota
	CmdMoveUp
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight
	CmdConsume
	CmdRepel
	CmdQuit
)

// String returns the snake_case command name used in telemetry.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdMoveUp:
		return "move_up"
	case CmdMoveDown:
		return "move_down"
	case CmdMoveLeft:
		return "move_left"
	case CmdMoveRight:
		return "move_right"
	case CmdConsume:
		return "consume"
	case CmdRepel:
		return "repel"
	case CmdQuit:
		return "quit"
	}
	return "unknown"
}

// Delta returns the unit step of a move command. ok is false for every
// other command.
func (c Command) Delta() (dx, dy int, ok bool) {
	switch c {
	case CmdMoveUp:
		return 0, -1, true
	case CmdMoveDown:
		return 0, 1, true
	case CmdMoveLeft:
		return -1, 0, true
	case CmdMoveRight:
		return 1, 0, true
	}
	return 0, 0, false
}

// Outcome describes what a player action did.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeMoved
	OutcomeBlocked
	OutcomeEaten
	OutcomeEscaped
	OutcomeNoTarget
	OutcomeRepelled
	OutcomeRepelFailed
	OutcomeQuit
	OutcomeFrozen
)

// String returns the snake_case outcome name used in telemetry.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeMoved:
		return "moved"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeEaten:
		return "eaten"
	case OutcomeEscaped:
		return "escaped"
	case OutcomeNoTarget:
		return "no_target"
	case OutcomeRepelled:
		return "repelled"
	case OutcomeRepelFailed:
		return "repel_failed"
	case OutcomeQuit:
		return "quit"
	case OutcomeFrozen:
		return "frozen"
	}
	return "unknown"
}
