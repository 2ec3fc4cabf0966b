package game

import (
	"log/slog"
	"testing"
	"time"

	"github.com/pthm-cable/hunt/components"
	"github.com/pthm-cable/hunt/config"
	"github.com/pthm-cable/hunt/systems"
)

// scriptedRand replays fixed draws. Exhausted float draws return 0.99 (every
// roll fails), exhausted int draws return 0, and Shuffle keeps the order.
type scriptedRand struct {
	floats []float64
	ints   []int
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

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.now = c.now.Add(d)
}

var quietLogger = slog.New(slog.DiscardHandler)

// flatTerrain returns air above a flat grass floor starting at row ground.
func flatTerrain(width, height, ground int) *systems.Terrain {
	rows := make([][]systems.Tile, height)
	for y := range rows {
		rows[y] = make([]systems.Tile, width)
		if y >= ground {
			for x := range rows[y] {
				rows[y][x] = systems.TileGrass
			}
		}
	}
	return systems.NewTerrain(rows)
}

// withTiles returns a copy of terrain with the given cells replaced.
func withTiles(t *systems.Terrain, tile systems.Tile, cells ...components.Position) *systems.Terrain {
	rows := t.Tiles()
	for _, c := range cells {
		rows[c.Y][c.X] = tile
	}
	return systems.NewTerrain(rows)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

// newEmptyGame builds a level with the player at player and no animals.
func newEmptyGame(t *testing.T, terrain *systems.Terrain, player components.Position, rng systems.Rand, clock *fakeClock) *Game {
	t.Helper()
	if clock == nil {
		clock = newFakeClock()
	}
	g := newGame(testConfig(t), terrain, Options{Rand: rng, Clock: clock.Now, Logger: quietLogger}.withDefaults())
	g.placePlayer(player)
	return g
}

// checkInvariants verifies the spatial and hunger invariants of a level.
func checkInvariants(t *testing.T, g *Game) {
	t.Helper()

	seen := make(map[components.Position]bool)
	count := 0
	query := g.animalFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		count++
		if seen[*pos] {
			t.Errorf("turn %d: two entities on %v", g.turn, *pos)
		}
		seen[*pos] = true
		if *pos == g.player.Pos {
			t.Errorf("turn %d: entity on the player's cell %v", g.turn, *pos)
		}
		if g.terrain.At(pos.X, pos.Y) != systems.TileAir {
			t.Errorf("turn %d: entity on %v tile at %v", g.turn, g.terrain.At(pos.X, pos.Y), *pos)
		}
		if e, ok := g.occupancy.EntityAt(*pos); !ok || !g.world.Alive(e) {
			t.Errorf("turn %d: occupancy out of sync at %v", g.turn, *pos)
		}
	}

	if count != g.occupancy.Len() {
		t.Errorf("turn %d: %d entities but %d indexed", g.turn, count, g.occupancy.Len())
	}
	if count != g.numPrey+g.numWolves {
		t.Errorf("turn %d: %d entities but counters say %d", g.turn, count, g.numPrey+g.numWolves)
	}
	if g.terrain.At(g.player.Pos.X, g.player.Pos.Y) != systems.TileAir {
		t.Errorf("turn %d: player on %v", g.turn, g.terrain.At(g.player.Pos.X, g.player.Pos.Y))
	}
	if g.player.Hunger < 0 || g.player.Hunger > g.cfg.Hunger.Max {
		t.Errorf("turn %d: hunger %v out of [0, %v]", g.turn, g.player.Hunger, g.cfg.Hunger.Max)
	}
	if g.status.Won && g.status.Lost {
		t.Errorf("turn %d: both won and lost", g.turn)
	}
}
