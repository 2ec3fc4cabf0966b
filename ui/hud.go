package ui

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/hunt/game"
)

// hungerBlocks is the width of the hunger bar.
const hungerBlocks = 10

// ControlsLine is the key legend shown under the HUD.
const ControlsLine = "Controls: arrows/WASD move, SPACE eat, R repel, Q quit"

// HungerBar renders hunger as a fixed-width bar with a percentage.
func HungerBar(hunger, maxHunger float64) string {
	frac := 0.0
	if maxHunger > 0 {
		frac = min(max(hunger/maxHunger, 0), 1)
	}
	filled := int(frac * hungerBlocks)
	return fmt.Sprintf("Hunger: %s%s (%d%%)",
		strings.Repeat("█", filled),
		strings.Repeat("-", hungerBlocks-filled),
		int(frac*100),
	)
}

// Lines returns the HUD lines for a snapshot.
func Lines(snap game.Snapshot) []string {
	lines := []string{
		"",
		HungerBar(snap.Player.Hunger, snap.MaxHunger),
		fmt.Sprintf("Prey remaining: %d/%d | Wolves: %d | Level %d/%d | Turn %d",
			snap.Prey, snap.PreyTotal, snap.Wolves, snap.Level, snap.Levels, snap.Turn),
	}
	if msg := Describe(snap); msg != "" {
		lines = append(lines, msg)
	}
	return append(lines, "", ControlsLine)
}

// Describe returns the message for the session state, or for the last
// action while playing.
func Describe(snap game.Snapshot) string {
	switch snap.State {
	case game.StateWon:
		return "Congratulations! You've caught all the prey!"
	case game.StateLost:
		if snap.Status.LossReason == game.ReasonCaught {
			return "Game Over! A wolf caught you!"
		}
		return "Game Over! You starved!"
	case game.StateLevelComplete:
		return fmt.Sprintf("Level %d cleared! Press any key for level %d, Q to quit.", snap.Level, snap.Level+1)
	case game.StateQuit:
		return "Thanks for playing!"
	}
	return describeAction(snap.LastAction)
}

func describeAction(a game.Action) string {
	switch a.Outcome {
	case game.OutcomeBlocked:
		return "You can't go that way."
	case game.OutcomeEaten:
		return fmt.Sprintf("You ate a %s.", a.Kind)
	case game.OutcomeEscaped:
		return fmt.Sprintf("The %s escaped!", a.Kind)
	case game.OutcomeNoTarget:
		return "Nothing to eat nearby."
	case game.OutcomeRepelled:
		if a.Displaced == 1 {
			return "You drove back a wolf."
		}
		return fmt.Sprintf("You drove back %d wolves.", a.Displaced)
	case game.OutcomeRepelFailed:
		return "No wolf to drive back."
	}
	return ""
}
