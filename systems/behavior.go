package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hunt/components"
	"github.com/pthm-cable/hunt/config"
)

// UpdateResult summarises one animal tick.
type UpdateResult struct {
	Activated int        // Entities that passed the activation roll
	Moved     int        // Entities that changed cell
	Caught    bool       // A wolf ended its turn next to the player
	Catcher   ecs.Entity // The first wolf that did
}

// BehaviorSystem runs the per-kind movement policies once per tick.
type BehaviorSystem struct {
	filter    ecs.Filter3[components.Position, components.Animal, components.Mover]
	occupancy *Occupancy
	cfg       config.BehaviorConfig
	rng       Rand
}

// NewBehaviorSystem creates a new behavior system.
func NewBehaviorSystem(w *ecs.World, occupancy *Occupancy, cfg config.BehaviorConfig, rng Rand) *BehaviorSystem {
	return &BehaviorSystem{
		filter:    *ecs.NewFilter3[components.Position, components.Animal, components.Mover](w),
		occupancy: occupancy,
		cfg:       cfg,
		rng:       rng,
	}
}

// Update gives every live animal its activation roll and dispatches prey to
// Wander and wolves to Pursue. A wolf that activated is checked for adjacency
// to the player afterwards, whether or not it moved.
func (s *BehaviorSystem) Update(player components.Position) UpdateResult {
	var res UpdateResult

	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, animal, mover := query.Get()

		if s.rng.Float64() < s.cfg.ActChance {
			res.Activated++

			var moved bool
			if animal.Kind.IsPredator() {
				moved = Pursue(entity, pos, mover, player, s.occupancy, s.cfg, s.rng)
			} else {
				moved = Wander(entity, pos, mover, s.occupancy, s.rng)
			}
			if moved {
				res.Moved++
			}

			// Only a wolf that acted this tick can catch
			if animal.Kind.IsPredator() && pos.Adjacent(player) && !res.Caught {
				res.Caught = true
				res.Catcher = entity
			}
		}
	}

	return res
}

// Wander is the idle prey policy. The mover gate decides whether this tick
// gets a move attempt; an attempt tries the 8 neighbours in a freshly
// shuffled order and takes the first one the animal may enter.
func Wander(e ecs.Entity, pos *components.Position, mover *components.Mover, occ *Occupancy, rng Rand) bool {
	if !mover.Ready() {
		return false
	}

	offsets := neighborOffsets
	rng.Shuffle(len(offsets), func(i, j int) {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	})

	for _, off := range offsets {
		target := pos.Add(off[0], off[1])
		if occ.CanEnter(target, e) {
			occ.Move(e, *pos, target)
			*pos = target
			return true
		}
	}
	return false
}

// Pursue is the wolf policy. The mover gate decides whether this tick gets a
// move attempt; an attempt picks exactly one candidate step and takes it only
// if the wolf may enter the target. There is no fallback search.
func Pursue(e ecs.Entity, pos *components.Position, mover *components.Mover, player components.Position, occ *Occupancy, cfg config.BehaviorConfig, rng Rand) bool {
	if !mover.Ready() {
		return false
	}

	dx, dy := PursuitStep(*pos, player, cfg, rng)
	if dx == 0 && dy == 0 {
		return false
	}

	target := pos.Add(dx, dy)
	if !occ.CanEnter(target, e) {
		return false
	}
	occ.Move(e, *pos, target)
	*pos = target
	return true
}

// PursuitStep draws the wolf's candidate step toward (or around) the player.
func PursuitStep(from, player components.Position, cfg config.BehaviorConfig, rng Rand) (dx, dy int) {
	if rng.Float64() >= cfg.PursueChance {
		// Random step from the 3x3 set, staying put included
		i := rng.Intn(9)
		return i%3 - 1, i/3 - 1
	}

	offX, offY := player.X-from.X, player.Y-from.Y
	dx, dy = sign(offX), sign(offY)

	if rng.Float64() < cfg.AxisCollapseChance {
		if rng.Intn(2) == 0 {
			dy = 0
		} else {
			dx = 0
		}
	}

	if rng.Float64() < cfg.PerpendicularChance {
		side := 1
		if rng.Intn(2) == 1 {
			side = -1
		}
		// Sidestep across the dominant axis of the chase
		if absInt(offX) >= absInt(offY) {
			dx, dy = 0, side
		} else {
			dx, dy = side, 0
		}
	}

	return dx, dy
}
