package game

import (
	"context"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/hunt/components"
	"github.com/pthm-cable/hunt/config"
	"github.com/pthm-cable/hunt/systems"
)

// StepClock is a fake clock that moves forward by a fixed step on every
// read. A Game reads its clock once per turn, so stepping by the decay
// interval decays hunger exactly once per turn.
type StepClock struct {
	now  time.Time
	step time.Duration
}

// NewStepClock creates a clock starting at start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{now: start, step: step}
}

// Now advances the clock by one step and returns the new time.
func (c *StepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// repelRadius is how close a wolf gets before the autopilot repels it.
const repelRadius = 3

// Autopilot picks commands for headless play: repel a close wolf, eat prey
// in reach, otherwise walk the shortest path toward the nearest prey.
type Autopilot struct {
	cfg *config.Config
	rng systems.Rand
}

// NewAutopilot creates an autopilot. rng breaks ties when no prey is reachable.
func NewAutopilot(cfg *config.Config, rng systems.Rand) *Autopilot {
	return &Autopilot{cfg: cfg, rng: rng}
}

// Next returns the command for the given state of the world.
func (a *Autopilot) Next(snap Snapshot) Command {
	if snap.State != StatePlaying {
		return CmdNone
	}

	player := snap.Player.Pos
	for _, e := range snap.Entities {
		if e.Kind.IsPredator() && e.Pos.Chebyshev(player) <= repelRadius && snap.Player.Hunger > a.cfg.Hunger.RepelCost {
			return CmdRepel
		}
	}

	for _, e := range snap.Entities {
		if e.Kind.IsPrey() && a.inReach(player, e.Pos) {
			return CmdConsume
		}
	}

	if cmd, ok := a.pathToPrey(snap); ok {
		return cmd
	}

	cmds := [4]Command{CmdMoveUp, CmdMoveDown, CmdMoveLeft, CmdMoveRight}
	return cmds[a.rng.Intn(len(cmds))]
}

func (a *Autopilot) inReach(player, prey components.Position) bool {
	dx := float64(absInt(prey.X - player.X))
	dy := float64(absInt(prey.Y - player.Y))
	return dx <= a.cfg.Hunger.ReachX && dy <= a.cfg.Hunger.ReachY
}

// pathToPrey runs a breadth-first search over cells the player can walk on
// and returns the first move of the shortest path to a cell with prey in
// reach.
func (a *Autopilot) pathToPrey(snap Snapshot) (Command, bool) {
	type node struct {
		pos   components.Position
		first Command
	}

	blocked := mapset.New[components.Position]()
	var prey []components.Position
	for _, e := range snap.Entities {
		blocked.Put(e.Pos)
		if e.Kind.IsPrey() {
			prey = append(prey, e.Pos)
		}
	}
	if len(prey) == 0 {
		return CmdNone, false
	}

	walkable := func(p components.Position) bool {
		if p.X < 0 || p.X >= snap.Width || p.Y < 0 || p.Y >= snap.Height {
			return false
		}
		return snap.Tiles[p.Y][p.X] == systems.TileAir && !blocked.Has(p)
	}

	start := snap.Player.Pos
	visited := mapset.New[components.Position]()
	visited.Put(start)
	queue := []node{{pos: start}}
	moves := [4]Command{CmdMoveUp, CmdMoveDown, CmdMoveLeft, CmdMoveRight}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.first != CmdNone {
			for _, p := range prey {
				if a.inReach(current.pos, p) {
					return current.first, true
				}
			}
		}

		for i, off := range cardinalOffsets {
			next := current.pos.Add(off[0], off[1])
			if visited.Has(next) || !walkable(next) {
				continue
			}
			visited.Put(next)
			first := current.first
			if first == CmdNone {
				first = moves[i]
			}
			queue = append(queue, node{pos: next, first: first})
		}
	}
	return CmdNone, false
}

// PlayHeadless lets the autopilot play the session for at most maxTurns
// turns. It returns the number of commands handled.
func PlayHeadless(ctx context.Context, s *Session, pilot *Autopilot, maxTurns int) int {
	turns := 0
	for turns < maxTurns && !s.Done() {
		if ctx.Err() != nil {
			s.quit()
			break
		}
		s.Advance()
		if s.Done() {
			break
		}
		s.Handle(pilot.Next(s.Snapshot()))
		turns++
	}
	return turns
}
