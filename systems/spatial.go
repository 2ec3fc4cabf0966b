package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hunt/components"
)

// Occupancy answers "is this cell free" against terrain, live entities and
// the player. It is kept in sync by the owner on every spawn, move and
// removal, so lookups never scan the ECS world.
type Occupancy struct {
	terrain   *Terrain
	cells     map[components.Position]ecs.Entity
	player    components.Position
	hasPlayer bool
}

// NewOccupancy creates an empty index over the given terrain.
func NewOccupancy(terrain *Terrain) *Occupancy {
	return &Occupancy{
		terrain: terrain,
		cells:   make(map[components.Position]ecs.Entity),
	}
}

// Terrain returns the indexed terrain.
func (o *Occupancy) Terrain() *Terrain {
	return o.terrain
}

// Clear removes every entity and the player.
func (o *Occupancy) Clear() {
	clear(o.cells)
	o.hasPlayer = false
}

// Place records an entity at p.
func (o *Occupancy) Place(e ecs.Entity, p components.Position) {
	o.cells[p] = e
}

// Move relocates an entity from one cell to another.
func (o *Occupancy) Move(e ecs.Entity, from, to components.Position) {
	if cur, ok := o.cells[from]; ok && cur == e {
		delete(o.cells, from)
	}
	o.cells[to] = e
}

// Remove forgets the entity at p.
func (o *Occupancy) Remove(e ecs.Entity, p components.Position) {
	if cur, ok := o.cells[p]; ok && cur == e {
		delete(o.cells, p)
	}
}

// SetPlayer records the player's cell.
func (o *Occupancy) SetPlayer(p components.Position) {
	o.player = p
	o.hasPlayer = true
}

// Player returns the player's cell.
func (o *Occupancy) Player() components.Position {
	return o.player
}

// EntityAt returns the entity standing on p, if any.
func (o *Occupancy) EntityAt(p components.Position) (ecs.Entity, bool) {
	e, ok := o.cells[p]
	return e, ok
}

// Len returns the number of indexed entities.
func (o *Occupancy) Len() int {
	return len(o.cells)
}

// IsFree reports whether (x, y) is an in-bounds air cell holding neither the
// player nor any entity other than ignoring. Pass the zero Entity to ignore
// nothing.
func (o *Occupancy) IsFree(x, y int, ignoring ecs.Entity) bool {
	if !o.terrain.InBounds(x, y) {
		return false
	}
	if o.terrain.At(x, y) != TileAir {
		return false
	}
	p := components.Position{X: x, Y: y}
	if e, ok := o.cells[p]; ok && e != ignoring {
		return false
	}
	if o.hasPlayer && o.player == p {
		return false
	}
	return true
}

// IsNearWall reports whether the 3x3 block around (x, y) touches grass or stone.
func (o *Occupancy) IsNearWall(x, y int) bool {
	return o.terrain.IsNearWall(x, y)
}

// CanEnter reports whether an animal may stand on p: free and away from walls.
func (o *Occupancy) CanEnter(p components.Position, self ecs.Entity) bool {
	return o.IsFree(p.X, p.Y, self) && !o.IsNearWall(p.X, p.Y)
}
