// Package game owns the world state of one level, the per-turn protocol that
// ties player commands to it, and the session that strings levels together.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hunt/components"
	"github.com/pthm-cable/hunt/config"
	"github.com/pthm-cable/hunt/systems"
	"github.com/pthm-cable/hunt/telemetry"
)

// Loss reasons reported in Status.
const (
	ReasonCaught  = "predator caught player"
	ReasonStarved = "starved"
)

// Clock returns the current wall-clock time. Hunger decay is driven by it.
type Clock func() time.Time

// Player is the player's cell and hunger.
type Player struct {
	Pos    components.Position
	Hunger float64
}

// Status is the terminal state of a level. At most one of Won and Lost is set.
type Status struct {
	Won        bool
	Lost       bool
	LossReason string
}

// Done reports whether the level has ended.
func (s Status) Done() bool {
	return s.Won || s.Lost
}

// Options configures a Game. Zero values pick sensible defaults.
type Options struct {
	Rand      systems.Rand // defaults to a time-seeded source
	Clock     Clock        // defaults to time.Now
	Level     int          // 1-based, defaults to 1
	Logger    *slog.Logger // defaults to slog.Default()
	Collector *telemetry.Collector
	Perf      *telemetry.PerfCollector
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Level < 1 {
		o.Level = 1
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Game holds the complete state of one level.
type Game struct {
	cfg    *config.Config
	rng    systems.Rand
	clock  Clock
	logger *slog.Logger

	world *ecs.World

	// Entity mapper and filter over the three animal components
	animalMapper *ecs.Map3[components.Position, components.Animal, components.Mover]
	animalFilter *ecs.Filter3[components.Position, components.Animal, components.Mover]

	// Individual component mappers for lookups
	posMap    *ecs.Map[components.Position]
	animalMap *ecs.Map[components.Animal]

	terrain   *systems.Terrain
	occupancy *systems.Occupancy
	behavior  *systems.BehaviorSystem

	player    Player
	status    Status
	level     int
	turn      int
	lastDecay time.Time

	// Population by kind
	numPrey   int
	numWolves int

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	turnOpen  bool
	advance   AdvanceResult
}

// New generates terrain for the configured world size and populates it for
// opts.Level.
func New(cfg *config.Config, opts Options) *Game {
	opts = opts.withDefaults()
	terrain := systems.GenerateTerrain(cfg.World.Width, cfg.World.Height, cfg.Terrain, opts.Rand)
	return NewWithTerrain(cfg, terrain, opts)
}

// NewWithTerrain places the player on the terrain's spawn point and spawns
// the level's animals around them.
func NewWithTerrain(cfg *config.Config, terrain *systems.Terrain, opts Options) *Game {
	g := newGame(cfg, terrain, opts.withDefaults())

	spawn, ok := terrain.SpawnPoint()
	if !ok {
		g.logger.Warn("no air cell for the player", "width", terrain.Width(), "height", terrain.Height())
	}
	g.placePlayer(spawn)
	g.spawnPopulation()

	g.logger.Info("level started",
		"level", g.level,
		"player_x", g.player.Pos.X,
		"player_y", g.player.Pos.Y,
		"prey", g.numPrey,
		"wolves", g.numWolves,
	)
	return g
}

// newGame builds an empty level: no player placement, no animals.
func newGame(cfg *config.Config, terrain *systems.Terrain, opts Options) *Game {
	world := ecs.NewWorld()
	occupancy := systems.NewOccupancy(terrain)

	return &Game{
		cfg:          cfg,
		rng:          opts.Rand,
		clock:        opts.Clock,
		logger:       opts.Logger,
		world:        world,
		animalMapper: ecs.NewMap3[components.Position, components.Animal, components.Mover](world),
		animalFilter: ecs.NewFilter3[components.Position, components.Animal, components.Mover](world),
		posMap:       ecs.NewMap[components.Position](world),
		animalMap:    ecs.NewMap[components.Animal](world),
		terrain:      terrain,
		occupancy:    occupancy,
		behavior:     systems.NewBehaviorSystem(world, occupancy, cfg.Behavior, opts.Rand),
		player:       Player{Hunger: cfg.Hunger.Initial},
		level:        opts.Level,
		lastDecay:    opts.Clock(),
		collector:    opts.Collector,
		perf:         opts.Perf,
	}
}

// Player returns the player's state.
func (g *Game) Player() Player {
	return g.player
}

// Status returns the terminal state of the level.
func (g *Game) Status() Status {
	return g.status
}

// Frozen reports whether the level has ended; every mutator is then a no-op.
func (g *Game) Frozen() bool {
	return g.status.Done()
}

// Level returns the 1-based level number.
func (g *Game) Level() int {
	return g.level
}

// Turn returns the number of turns advanced so far.
func (g *Game) Turn() int {
	return g.turn
}

// Terrain returns the level's terrain.
func (g *Game) Terrain() *systems.Terrain {
	return g.terrain
}

// PreyCount returns the number of live rabbits and squirrels.
func (g *Game) PreyCount() int {
	return g.numPrey
}

// WolfCount returns the number of live wolves.
func (g *Game) WolfCount() int {
	return g.numWolves
}
