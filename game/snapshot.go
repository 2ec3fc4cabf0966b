package game

import (
	"github.com/pthm-cable/hunt/components"
	"github.com/pthm-cable/hunt/systems"
)

// EntityView is a read-only copy of one animal.
type EntityView struct {
	Pos  components.Position
	Kind components.Kind
}

// Snapshot is a deep copy of everything a renderer needs. It shares no
// memory with the Game.
type Snapshot struct {
	Width, Height int
	Tiles         [][]systems.Tile
	Entities      []EntityView
	Player        Player
	MaxHunger     float64
	Level         int
	Levels        int
	Turn          int
	Prey          int
	PreyTotal     int // Prey spawned per level
	Wolves        int
	Status        Status

	// Filled in by Session
	State      State
	LastAction Action
}

// Snapshot copies the current world state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Width:     g.terrain.Width(),
		Height:    g.terrain.Height(),
		Tiles:     g.terrain.Tiles(),
		Entities:  make([]EntityView, 0, g.numPrey+g.numWolves),
		Player:    g.player,
		MaxHunger: g.cfg.Hunger.Max,
		Level:     g.level,
		Levels:    g.cfg.Levels.Count,
		Turn:      g.turn,
		Prey:      g.numPrey,
		PreyTotal: g.cfg.Derived.PreyCount,
		Wolves:    g.numWolves,
		Status:    g.status,
		State:     stateFor(g.status, g.level, g.cfg.Levels.Count),
	}

	query := g.animalFilter.Query()
	for query.Next() {
		pos, animal, _ := query.Get()
		snap.Entities = append(snap.Entities, EntityView{Pos: *pos, Kind: animal.Kind})
	}

	return snap
}

// EntityAt returns the animal standing on p, if any.
func (s Snapshot) EntityAt(p components.Position) (EntityView, bool) {
	for _, e := range s.Entities {
		if e.Pos == p {
			return e, true
		}
	}
	return EntityView{}, false
}
