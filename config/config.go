// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Forces    ForcesConfig    `yaml:"forces"`
	Agent     AgentConfig     `yaml:"agent"`
	Unity     UnityConfig     `yaml:"unity"`
	Resource  ResourceConfig  `yaml:"resource"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Seeding   SeedingConfig   `yaml:"seeding"`
	Run       RunConfig       `yaml:"run"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// World can be larger than the screen; camera handles the viewport.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// ForcesConfig holds the steering force parameters.
type ForcesConfig struct {
	MaxVel          float64 `yaml:"max_vel"`          // Per-axis velocity clamp
	Space           float64 `yaml:"space"`            // Separation range between agents
	CohesionDivisor float64 `yaml:"cohesion_divisor"` // Larger = weaker pull to the barycenter
	PursuitDivisor  float64 `yaml:"pursuit_divisor"`  // Larger = weaker pull to the target
}

// AgentConfig holds agent creation and presentation parameters.
type AgentConfig struct {
	Width      int     `yaml:"width"`       // Collision box width in world units
	Height     int     `yaml:"height"`      // Collision box height in world units
	MinHealth  int     `yaml:"min_health"`  // Initial health draw, inclusive lower bound
	MaxHealth  int     `yaml:"max_health"`  // Initial health draw, inclusive upper bound
	InitialVX  float64 `yaml:"initial_vx"`
	InitialVY  float64 `yaml:"initial_vy"`
	AngularVel float64 `yaml:"angular_vel"` // Heading advance per tick, presentation only
}

// UnityConfig holds unity lifecycle parameters.
type UnityConfig struct {
	InitialRadius  float64 `yaml:"initial_radius"`
	SplitThreshold int     `yaml:"split_threshold"` // Member count that triggers self-reproduction
}

// ResourceConfig holds resource pool parameters.
type ResourceConfig struct {
	InitialCount       int `yaml:"initial_count"`
	Health             int `yaml:"health"`
	Radius             int `yaml:"radius"`
	SpentThreshold     int `yaml:"spent_threshold"`     // Health at or below this is metabolisable
	ReplenishThreshold int `yaml:"replenish_threshold"` // Replenish when pool is at or below this
	ReplenishMax       int `yaml:"replenish_max"`       // Up to this many new resources per replenish
	SpawnMinX          int `yaml:"spawn_min_x"`
	SpawnMaxX          int `yaml:"spawn_max_x"`
	SpawnMinY          int `yaml:"spawn_min_y"`
	SpawnMaxY          int `yaml:"spawn_max_y"`
	MetaboliseSpawn    int `yaml:"metabolise_spawn"` // Agents spawned into the unity per metabolised resource
}

// PhysicsConfig holds collision parameters.
type PhysicsConfig struct {
	GridCellSize    float64 `yaml:"grid_cell_size"`   // Spatial grid cell size for separation queries
	ObstacleDamping float64 `yaml:"obstacle_damping"` // Velocity factor after obstacle contact
}

// SeedingConfig holds the population drip that founds the first colony.
type SeedingConfig struct {
	SpawnX       int `yaml:"spawn_x"`
	SpawnY       int `yaml:"spawn_y"`
	DripInterval int `yaml:"drip_interval"` // Ticks between dripped agents
	DripEndTick  int `yaml:"drip_end_tick"` // Last tick an agent is dripped
}

// RunConfig holds scheduling parameters for a run.
type RunConfig struct {
	PursueAtTick    int `yaml:"pursue_at_tick"`   // Tick at which pursuit switches on
	DeadlineMinutes int `yaml:"deadline_minutes"` // Wall-clock run limit (0 = unlimited)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Stats flush window in simulated seconds
	PerfWindow  int     `yaml:"perf_window"`  // Perf sample ring size in ticks
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	WorldW32  float32 // Effective world width as float32
	WorldH32  float32 // Effective world height as float32

	BoundsMaxX float32 // Largest legal agent x: world width minus agent width
	BoundsMaxY float32 // Largest legal agent y: world height minus agent height

	MaxVel32      float32
	Space32       float32
	CohesionDiv32 float32
	PursuitDiv32  float32
	AngularVel32  float32
	Damping32     float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	c.Derived.BoundsMaxX = float32(worldW - c.Agent.Width)
	c.Derived.BoundsMaxY = float32(worldH - c.Agent.Height)

	c.Derived.MaxVel32 = float32(c.Forces.MaxVel)
	c.Derived.Space32 = float32(c.Forces.Space)
	c.Derived.CohesionDiv32 = float32(c.Forces.CohesionDivisor)
	c.Derived.PursuitDiv32 = float32(c.Forces.PursuitDivisor)
	c.Derived.AngularVel32 = float32(c.Agent.AngularVel)
	c.Derived.Damping32 = float32(c.Physics.ObstacleDamping)
}

// Recompute refreshes the derived values after direct field mutation,
// e.g. when a tuner writes new force parameters into a loaded config.
func (c *Config) Recompute() {
	c.computeDerived()
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
