package systems

import (
	"github.com/pthm-cable/hunt/components"
	"github.com/pthm-cable/hunt/config"
)

// Tile is the static terrain type of one grid cell.
type Tile uint8

const (
	TileAir Tile = iota
	TileGrass
	TileTree
	TileStone
)

// String returns the lower-case tile name.
func (t Tile) String() string {
	switch t {
	case TileAir:
		return "air"
	case TileGrass:
		return "grass"
	case TileTree:
		return "tree"
	case TileStone:
		return "stone"
	}
	return "unknown"
}

// IsWall reports whether the tile counts for the near-wall predicate.
// Trees are obstacles but not walls.
func (t Tile) IsWall() bool {
	return t == TileGrass || t == TileStone
}

// Terrain is the write-once tile grid of a level.
type Terrain struct {
	grid   [][]Tile // row-major: grid[y][x]
	ground []int    // ground row per column, -1 when unknown
	width  int
	height int
}

// GenerateTerrain builds a grid column by column. Each column gets a ground
// row around height-GroundOffset; everything from it down is grass, the
// ground cell may turn to stone and the cell above it may hold a tree.
// Columns are independent, so the surface is deliberately jagged.
func GenerateTerrain(width, height int, cfg config.TerrainConfig, rng Rand) *Terrain {
	t := newEmptyTerrain(width, height)

	base := height - cfg.GroundOffset
	for x := 0; x < width; x++ {
		ground := base + rng.Intn(2*cfg.GroundJitter+1) - cfg.GroundJitter
		t.ground[x] = ground

		for y := ground; y < height; y++ {
			t.grid[y][x] = TileGrass
		}

		// Both rolls are always drawn so the stream stays aligned per column
		if rng.Float64() < cfg.TreeChance && ground > 0 {
			t.grid[ground-1][x] = TileTree
		}
		if rng.Float64() < cfg.StoneChance {
			t.grid[ground][x] = TileStone
		}
	}

	return t
}

// NewTerrain wraps a hand-built grid. Rows are copied; every row must have
// the same length.
func NewTerrain(rows [][]Tile) *Terrain {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	t := newEmptyTerrain(width, height)
	for y := range rows {
		copy(t.grid[y], rows[y])
	}
	return t
}

// newEmptyTerrain allocates an all-air grid.
func newEmptyTerrain(width, height int) *Terrain {
	grid := make([][]Tile, height)
	for y := range grid {
		grid[y] = make([]Tile, width)
	}
	ground := make([]int, width)
	for x := range ground {
		ground[x] = -1
	}
	return &Terrain{grid: grid, ground: ground, width: width, height: height}
}

// Width returns the grid width in cells.
func (t *Terrain) Width() int {
	return t.width
}

// Height returns the grid height in cells.
func (t *Terrain) Height() int {
	return t.height
}

// InBounds reports whether (x, y) lies on the grid.
func (t *Terrain) InBounds(x, y int) bool {
	return x >= 0 && x < t.width && y >= 0 && y < t.height
}

// At returns the tile at (x, y). Out-of-bounds cells read as air;
// callers that care check InBounds first.
func (t *Terrain) At(x, y int) Tile {
	if !t.InBounds(x, y) {
		return TileAir
	}
	return t.grid[y][x]
}

// GroundRow returns the generated ground row of column x, or -1 for
// hand-built terrain.
func (t *Terrain) GroundRow(x int) int {
	if x < 0 || x >= t.width {
		return -1
	}
	return t.ground[x]
}

// IsNearWall reports whether any in-bounds cell of the 3x3 block centred on
// (x, y), the centre included, is grass or stone.
func (t *Terrain) IsNearWall(x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cx, cy := x+dx, y+dy
			if !t.InBounds(cx, cy) {
				continue
			}
			if t.grid[cy][cx].IsWall() {
				return true
			}
		}
	}
	return false
}

// Tiles returns a deep copy of the grid.
func (t *Terrain) Tiles() [][]Tile {
	out := make([][]Tile, t.height)
	for y := range t.grid {
		out[y] = make([]Tile, t.width)
		copy(out[y], t.grid[y])
	}
	return out
}

// SpawnPoint returns the player's starting cell: one row above the first
// grass cell of the middle column. When that cell is not air (a tree, or a
// stone that replaced the ground cell) the column is climbed to the first
// air cell; if the column has none, the nearest air cell by Chebyshev ring
// is used. ok is false only when the grid holds no air at all.
func (t *Terrain) SpawnPoint() (pos components.Position, ok bool) {
	mid := t.width / 2
	// Without ground in the column the player starts on the bottom row
	candidate := components.Position{X: mid, Y: t.height - 1}
	for y := 0; y < t.height; y++ {
		if t.grid[y][mid] == TileGrass {
			candidate.Y = y - 1
			break
		}
	}

	for y := candidate.Y; y >= 0; y-- {
		if t.grid[y][mid] == TileAir {
			return components.Position{X: mid, Y: y}, true
		}
	}

	if candidate.Y < 0 {
		candidate.Y = 0
	}
	return t.nearestAir(candidate)
}

// nearestAir searches Chebyshev rings outward from origin.
func (t *Terrain) nearestAir(origin components.Position) (components.Position, bool) {
	maxRadius := max(t.width, t.height)
	for r := 0; r <= maxRadius; r++ {
		for y := origin.Y - r; y <= origin.Y+r; y++ {
			for x := origin.X - r; x <= origin.X+r; x++ {
				// Only the ring itself, inner cells were checked already
				if absInt(x-origin.X) != r && absInt(y-origin.Y) != r {
					continue
				}
				if t.InBounds(x, y) && t.grid[y][x] == TileAir {
					return components.Position{X: x, Y: y}, true
				}
			}
		}
	}
	return components.Position{}, false
}
