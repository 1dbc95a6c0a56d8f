// Package config holds tunables for a run: logging, room layout, scatter
// density and gameplay speeds. Values come from a YAML file layered over defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration
type Config struct {
	Seed     int64          `yaml:"seed"`
	Renderer string         `yaml:"renderer"`
	Locale   LocaleConfig   `yaml:"locale"`
	Log      LogConfig      `yaml:"log"`
	Rooms    RoomsConfig    `yaml:"rooms"`
	Scatter  ScatterConfig  `yaml:"scatter"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// LocaleConfig selects the translation catalogue
type LocaleConfig struct {
	Path     string `yaml:"path"`
	Language string `yaml:"language"`
	Domain   string `yaml:"domain"`
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// RoomsConfig describes the room ring and door layout
type RoomsConfig struct {
	Capacity          int     `yaml:"capacity"`
	StartZ            float64 `yaml:"start_z"`
	OverlapMargin     float64 `yaml:"overlap_margin"`
	FloorWidth        float64 `yaml:"floor_width"`
	DoorY             float64 `yaml:"door_y"`
	SideDoorZOffset   float64 `yaml:"side_door_z_offset"`
	CenterDoorZOffset float64 `yaml:"center_door_z_offset"`
	CollectibleY      float64 `yaml:"collectible_y"`
	CollectibleBehind float64 `yaml:"collectible_behind"`
	CollectibleChance float64 `yaml:"collectible_chance"`
}

// ScatterProfile is one density tier for the decorative prop field
type ScatterProfile struct {
	Count       int     `yaml:"count"`
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	ExcludeMinX float64 `yaml:"exclude_min_x"`
	ExcludeMaxX float64 `yaml:"exclude_max_x"`
	ExcludeMinZ float64 `yaml:"exclude_min_z"`
	ExcludeMaxZ float64 `yaml:"exclude_max_z"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// ScatterConfig holds both density tiers and the rule for picking one
type ScatterConfig struct {
	Full    ScatterProfile `yaml:"full"`
	Reduced ScatterProfile `yaml:"reduced"`
	// ReducedBelowCols selects the reduced tier when the viewport is narrower than this
	ReducedBelowCols int `yaml:"reduced_below_cols"`
}

// GameplayConfig tunes the actor and the session loop
type GameplayConfig struct {
	BaseSpeed        float64 `yaml:"base_speed"`
	LaneOffset       float64 `yaml:"lane_offset"`
	LaneChangeTime   float64 `yaml:"lane_change_time"`
	ActorStartZ      float64 `yaml:"actor_start_z"`
	JumpHeight       float64 `yaml:"jump_height"`
	JumpDuration     float64 `yaml:"jump_duration"`
	SpeedRamp        float64 `yaml:"speed_ramp"`
	MaxSpeedFactor   float64 `yaml:"max_speed_factor"`
	ViewDistance     float64 `yaml:"view_distance"`
	RecycleLag       float64 `yaml:"recycle_lag"`
	TickRate         int     `yaml:"tick_rate"`
	HeadlessMaxTicks int     `yaml:"headless_max_ticks"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Renderer: "tui",
		Locale: LocaleConfig{
			Path:     "locales",
			Language: "en_GB",
			Domain:   "default",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Rooms: RoomsConfig{
			Capacity:          8,
			StartZ:            -3,
			OverlapMargin:     0.1,
			FloorWidth:        2.5,
			DoorY:             0.08,
			SideDoorZOffset:   0.03,
			CenterDoorZOffset: -0.02,
			CollectibleY:      0.2,
			CollectibleBehind: 0.2,
			CollectibleChance: 0.25,
		},
		Scatter: ScatterConfig{
			Full: ScatterProfile{
				Count:       250,
				MinRadius:   10,
				MaxRadius:   70,
				ExcludeMinX: -5,
				ExcludeMaxX: 5,
				ExcludeMinZ: 0,
				ExcludeMaxZ: 30,
				MaxAttempts: 10,
			},
			Reduced: ScatterProfile{
				Count:       50,
				MinRadius:   10,
				MaxRadius:   30,
				ExcludeMinX: -5,
				ExcludeMaxX: 5,
				ExcludeMinZ: 0,
				ExcludeMaxZ: 10,
				MaxAttempts: 10,
			},
			ReducedBelowCols: 100,
		},
		Gameplay: GameplayConfig{
			BaseSpeed:        3.5,
			LaneOffset:       0.8,
			LaneChangeTime:   0.12,
			ActorStartZ:      4,
			JumpHeight:       0.23,
			JumpDuration:     0.75,
			SpeedRamp:        0.02,
			MaxSpeedFactor:   2.5,
			ViewDistance:     30,
			RecycleLag:       1,
			TickRate:         60,
			HeadlessMaxTicks: 3600,
		},
	}
}

// Load reads path and overlays it on Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Validate rejects values the engine cannot run with
func (c Config) Validate() error {
	if c.Rooms.Capacity <= 0 {
		return fmt.Errorf("%w: rooms.capacity must be positive, got %d", ErrInvalid, c.Rooms.Capacity)
	}
	if c.Rooms.CollectibleChance < 0 || c.Rooms.CollectibleChance > 1 {
		return fmt.Errorf("%w: rooms.collectible_chance must be within [0,1], got %v", ErrInvalid, c.Rooms.CollectibleChance)
	}
	for name, p := range map[string]ScatterProfile{"full": c.Scatter.Full, "reduced": c.Scatter.Reduced} {
		if p.Count < 0 || p.MaxAttempts < 1 {
			return fmt.Errorf("%w: scatter.%s needs count >= 0 and max_attempts >= 1", ErrInvalid, name)
		}
		if p.MinRadius < 0 || p.MaxRadius < p.MinRadius {
			return fmt.Errorf("%w: scatter.%s radii must satisfy 0 <= min <= max", ErrInvalid, name)
		}
	}
	if c.Gameplay.BaseSpeed <= 0 || c.Gameplay.TickRate <= 0 {
		return fmt.Errorf("%w: gameplay.base_speed and gameplay.tick_rate must be positive", ErrInvalid)
	}
	if c.Gameplay.MaxSpeedFactor < 1 {
		return fmt.Errorf("%w: gameplay.max_speed_factor must be >= 1", ErrInvalid)
	}
	return nil
}
