package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"snake-arcade/game/types"
	"snake-arcade/store"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	CanvasWidth  int    `yaml:"canvas_width"`
	CanvasHeight int    `yaml:"canvas_height"`
	BoxSize      int    `yaml:"box_size"`
	Store        string `yaml:"store"`
	DataDir      string `yaml:"data_dir"`
	LogLevel     string `yaml:"log_level"`
	TargetFPS    int    `yaml:"target_fps"`
	Seed         int64  `yaml:"seed"` // 0 seeds from the clock
}

func Default() Config {
	return Config{
		CanvasWidth:  400,
		CanvasHeight: 400,
		BoxSize:      20,
		Store:        store.BackendJSON,
		DataDir:      "data",
		LogLevel:     "info",
		TargetFPS:    60,
	}
}

// Grid returns the playfield in cells.
func (c Config) Grid() types.Grid {
	return types.Grid{
		Width:  c.CanvasWidth / c.BoxSize,
		Height: c.CanvasHeight / c.BoxSize,
	}
}

func (c Config) Validate() error {
	if c.BoxSize <= 0 || c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("%w: canvas and box sizes must be positive", ErrInvalid)
	}
	if c.CanvasWidth%c.BoxSize != 0 || c.CanvasHeight%c.BoxSize != 0 {
		return fmt.Errorf("%w: canvas %dx%d is not a multiple of box size %d", ErrInvalid, c.CanvasWidth, c.CanvasHeight, c.BoxSize)
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("%w: target fps must be positive", ErrInvalid)
	}
	switch c.Store {
	case store.BackendJSON, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalid, c.Store)
	}
	return nil
}

// LoadFile overlays the YAML document at path onto c. Keys absent from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from defaults, an optional -config YAML file and
// command-line flags, in that order of precedence (flags win).
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()

	configPath := fs.String("config", "", "Path to a YAML config file")
	width := fs.Int("width", cfg.CanvasWidth, "Canvas width in pixels")
	height := fs.Int("height", cfg.CanvasHeight, "Canvas height in pixels")
	box := fs.Int("box", cfg.BoxSize, "Cell size in pixels")
	backend := fs.String("store", cfg.Store, "High score store: json, sqlite or memory")
	dataDir := fs.String("data", cfg.DataDir, "Directory for persisted data")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level: error, warn, info, debug, trace")
	fps := fs.Int("fps", cfg.TargetFPS, "Target frames per second")
	seed := fs.Int64("seed", cfg.Seed, "Random seed (0 = time based)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return cfg, err
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["width"] {
		cfg.CanvasWidth = *width
	}
	if set["height"] {
		cfg.CanvasHeight = *height
	}
	if set["box"] {
		cfg.BoxSize = *box
	}
	if set["store"] {
		cfg.Store = *backend
	}
	if set["data"] {
		cfg.DataDir = *dataDir
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}
	if set["fps"] {
		cfg.TargetFPS = *fps
	}
	if set["seed"] {
		cfg.Seed = *seed
	}

	return cfg, cfg.Validate()
}
