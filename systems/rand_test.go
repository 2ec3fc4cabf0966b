package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hunt/components"
)

// scriptedRand replays fixed draws. Exhausted float draws return 0.99 (every
// roll fails), exhausted int draws return 0, and Shuffle keeps the order
// unless a shuffle func is set.
type scriptedRand struct {
	floats  []float64
	ints    []int
	shuffle func(n int, swap func(i, j int))
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Shuffle(n int, swap func(i, j int)) {
	if r.shuffle != nil {
		r.shuffle(n, swap)
	}
}

// openTerrain returns an all-air grid.
func openTerrain(width, height int) *Terrain {
	rows := make([][]Tile, height)
	for y := range rows {
		rows[y] = make([]Tile, width)
	}
	return NewTerrain(rows)
}

// testWorld bundles an ECS world with an animal mapper.
type testWorld struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Animal, components.Mover]
	occ    *Occupancy
}

func newTestWorld(terrain *Terrain) *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		world:  w,
		mapper: ecs.NewMap3[components.Position, components.Animal, components.Mover](w),
		occ:    NewOccupancy(terrain),
	}
}

func (tw *testWorld) spawn(kind components.Kind, x, y, speed int) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	animal := components.Animal{Kind: kind}
	mover := components.Mover{Speed: speed}
	e := tw.mapper.NewEntity(&pos, &animal, &mover)
	tw.occ.Place(e, pos)
	return e
}

func (tw *testWorld) position(e ecs.Entity) components.Position {
	pos, _, _ := tw.mapper.Get(e)
	return *pos
}
