// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Population PopulationConfig `yaml:"population"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Hunger     HungerConfig     `yaml:"hunger"`
	Levels     LevelsConfig     `yaml:"levels"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid dimensions in cells.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TerrainConfig holds per-column terrain generation parameters.
type TerrainConfig struct {
	GroundOffset int     `yaml:"ground_offset"` // Ground row = height - ground_offset (+ jitter)
	GroundJitter int     `yaml:"ground_jitter"` // Ground row varies uniformly in [-jitter, +jitter]
	TreeChance   float64 `yaml:"tree_chance"`   // Chance of a tree above the ground row
	StoneChance  float64 `yaml:"stone_chance"`  // Chance the ground cell becomes stone
}

// PopulationConfig holds spawn counts and movement speeds.
type PopulationConfig struct {
	Rabbits            int `yaml:"rabbits"`
	Squirrels          int `yaml:"squirrels"`
	RabbitSpeed        int `yaml:"rabbit_speed"`   // Ticks per move attempt
	SquirrelSpeed      int `yaml:"squirrel_speed"` // Ticks per move attempt
	WolfSpeed          int `yaml:"wolf_speed"`
	WolvesPerLevel     int `yaml:"wolves_per_level"`     // Level N spawns N * this wolves
	WolfClearance      int `yaml:"wolf_clearance"`       // Minimum spawn distance from the player
	SpawnAttemptFactor int `yaml:"spawn_attempt_factor"` // Placement attempts per requested entity
}

// BehaviorConfig holds the per-tick AI probabilities.
type BehaviorConfig struct {
	ActChance           float64 `yaml:"act_chance"`           // Chance an entity acts this tick
	PursueChance        float64 `yaml:"pursue_chance"`        // Chance an active wolf pursues
	AxisCollapseChance  float64 `yaml:"axis_collapse_chance"` // Chance a pursuit step keeps one axis
	PerpendicularChance float64 `yaml:"perpendicular_chance"` // Chance a pursuit step goes sideways
}

// HungerConfig holds the player's hunger economy.
type HungerConfig struct {
	Initial       float64       `yaml:"initial"`
	Max           float64       `yaml:"max"`
	DecayAmount   float64       `yaml:"decay_amount"`   // Lost per decay interval
	DecayInterval time.Duration `yaml:"decay_interval"` // Wall-clock time per decay
	MoveCost      float64       `yaml:"move_cost"`
	ConsumeCost   float64       `yaml:"consume_cost"` // Charged when a consume attempt fails
	RepelCost     float64       `yaml:"repel_cost"`   // Charged once per successful repel
	RabbitValue   float64       `yaml:"rabbit_value"`
	SquirrelValue float64       `yaml:"squirrel_value"`
	EscapeChance  float64       `yaml:"escape_chance"`
	ReachX        float64       `yaml:"reach_x"` // Horizontal consume reach (wide glyphs)
	ReachY        float64       `yaml:"reach_y"`
}

// LevelsConfig holds level progression settings.
type LevelsConfig struct {
	Count int `yaml:"count"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Turns kept in the rolling timing window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PreyCount int // Rabbits + Squirrels per level
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.ComputeDerived()

	return cfg, nil
}

// Validate checks that every value is usable by the simulation.
func (c *Config) Validate() error {
	if c.World.Width < 3 || c.World.Height < 4 {
		return fmt.Errorf("world: size %dx%d too small", c.World.Width, c.World.Height)
	}
	if c.Terrain.GroundJitter < 0 {
		return fmt.Errorf("terrain.ground_jitter: must not be negative")
	}
	// Ground row must stay inside the grid for every jitter value
	if c.Terrain.GroundOffset-c.Terrain.GroundJitter < 1 || c.Terrain.GroundOffset+c.Terrain.GroundJitter > c.World.Height {
		return fmt.Errorf("terrain.ground_offset: %d out of range", c.Terrain.GroundOffset)
	}
	if c.Population.Rabbits < 0 || c.Population.Squirrels < 0 || c.Population.WolvesPerLevel < 0 || c.Population.WolfClearance < 0 {
		return fmt.Errorf("population: counts must not be negative")
	}
	if c.Population.RabbitSpeed < 1 || c.Population.SquirrelSpeed < 1 || c.Population.WolfSpeed < 1 {
		return fmt.Errorf("population: speeds must be at least 1")
	}
	if c.Population.SpawnAttemptFactor < 1 {
		return fmt.Errorf("population.spawn_attempt_factor: must be at least 1")
	}
	for name, p := range map[string]float64{
		"terrain.tree_chance":           c.Terrain.TreeChance,
		"terrain.stone_chance":          c.Terrain.StoneChance,
		"behavior.act_chance":           c.Behavior.ActChance,
		"behavior.pursue_chance":        c.Behavior.PursueChance,
		"behavior.axis_collapse_chance": c.Behavior.AxisCollapseChance,
		"behavior.perpendicular_chance": c.Behavior.PerpendicularChance,
		"hunger.escape_chance":          c.Hunger.EscapeChance,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: %v is not a probability", name, p)
		}
	}
	if c.Hunger.Max <= 0 || c.Hunger.Initial <= 0 || c.Hunger.Initial > c.Hunger.Max {
		return fmt.Errorf("hunger.initial: %v must be in (0, %v]", c.Hunger.Initial, c.Hunger.Max)
	}
	for name, v := range map[string]float64{
		"hunger.decay_amount":   c.Hunger.DecayAmount,
		"hunger.move_cost":      c.Hunger.MoveCost,
		"hunger.consume_cost":   c.Hunger.ConsumeCost,
		"hunger.repel_cost":     c.Hunger.RepelCost,
		"hunger.rabbit_value":   c.Hunger.RabbitValue,
		"hunger.squirrel_value": c.Hunger.SquirrelValue,
		"hunger.reach_x":        c.Hunger.ReachX,
		"hunger.reach_y":        c.Hunger.ReachY,
	} {
		if v < 0 {
			return fmt.Errorf("%s: %v must not be negative", name, v)
		}
	}
	if c.Hunger.DecayInterval <= 0 {
		return fmt.Errorf("hunger.decay_interval: must be positive")
	}
	if c.Levels.Count < 1 {
		return fmt.Errorf("levels.count: must be at least 1")
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after editing a loaded Config in place.
func (c *Config) ComputeDerived() {
	c.Derived.PreyCount = c.Population.Rabbits + c.Population.Squirrels
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 1
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
