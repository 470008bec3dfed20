// Package config loads the TOML configuration shared by the command line
// tools. Flags bound with Bind override values from the file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"chunk-ca/internal/logging"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World    WorldConfig    `toml:"world"`
	Viewport ViewportConfig `toml:"viewport"`
	Sim      SimConfig      `toml:"sim"`
	Logging  logging.Config `toml:"logging"`
	Trace    TraceConfig    `toml:"trace"`
}

type WorldConfig struct {
	ChunkWidth  int     `toml:"chunk_width"`
	ChunkHeight int     `toml:"chunk_height"`
	ChunksX     int     `toml:"chunks_x"`
	ChunksY     int     `toml:"chunks_y"`
	Seed        int64   `toml:"seed"`
	Workers     int     `toml:"workers"`     // 0 = GOMAXPROCS
	RandomFill  float64 `toml:"random_fill"` // initial GameOfLife density (0.0-1.0)
}

type ViewportConfig struct {
	Width        int `toml:"width"`  // pixels
	Height       int `toml:"height"` // pixels
	Scale        int `toml:"scale"`  // pixels per tile
	BufferChunks int `toml:"buffer_chunks"`
}

type SimConfig struct {
	TPS      int    `toml:"tps"`
	Running  bool   `toml:"running"`
	Scenario string `toml:"scenario"` // built-in name or path to a YAML file
	Ticks    int    `toml:"ticks"`    // headless only
}

type TraceConfig struct {
	Path string `toml:"path"` // empty disables tracing
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			ChunkWidth:  32,
			ChunkHeight: 32,
			ChunksX:     4,
			ChunksY:     3,
			Seed:        42,
			RandomFill:  0,
		},
		Viewport: ViewportConfig{
			Width:        1024,
			Height:       768,
			Scale:        8,
			BufferChunks: 1,
		},
		Sim: SimConfig{
			TPS:      30,
			Running:  true,
			Scenario: "sandbox",
			Ticks:    600,
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.World.ChunkWidth, "chunk-width", c.World.ChunkWidth, "chunk width in tiles")
	fs.IntVar(&c.World.ChunkHeight, "chunk-height", c.World.ChunkHeight, "chunk height in tiles")
	fs.IntVar(&c.World.ChunksX, "chunks-x", c.World.ChunksX, "initial chunk columns")
	fs.IntVar(&c.World.ChunksY, "chunks-y", c.World.ChunksY, "initial chunk rows")
	fs.Int64Var(&c.World.Seed, "seed", c.World.Seed, "seed for tile rules")
	fs.IntVar(&c.World.Workers, "workers", c.World.Workers, "compute workers (0 = GOMAXPROCS)")
	fs.Float64Var(&c.World.RandomFill, "fill", c.World.RandomFill, "initial game of life density")
	fs.IntVar(&c.Viewport.Scale, "scale", c.Viewport.Scale, "pixel scale multiplier")
	fs.IntVar(&c.Viewport.Width, "width", c.Viewport.Width, "viewport width in pixels")
	fs.IntVar(&c.Viewport.Height, "height", c.Viewport.Height, "viewport height in pixels")
	fs.IntVar(&c.Sim.TPS, "tps", c.Sim.TPS, "ticks per second")
	fs.StringVar(&c.Sim.Scenario, "scenario", c.Sim.Scenario, "built-in scenario name or YAML file")
	fs.IntVar(&c.Sim.Ticks, "ticks", c.Sim.Ticks, "ticks to run in headless mode")
	fs.StringVar(&c.Logging.Level, "log-level", c.Logging.Level, "debug, info, warn or error")
	fs.StringVar(&c.Trace.Path, "trace", c.Trace.Path, "write a zstd tick trace to this file")
}

// EnvPath names the environment variable consulted when no -config flag is
// given.
const EnvPath = "CHUNK_CA_CONFIG"

// FromArgs builds the configuration for a command: defaults, then the TOML
// file named by -config (or $CHUNK_CA_CONFIG), then the remaining flags. The
// result is validated.
func FromArgs(name string, args []string) (*Config, error) {
	path, err := scanConfigPath(name, args)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	cfg := Default()
	if path != "" {
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "TOML config file")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// scanConfigPath parses args once against a throwaway config to find -config.
func scanConfigPath(name string, args []string) (string, error) {
	var path string
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "TOML config file")
	Default().Bind(fs)
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return path, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.World.ChunkWidth <= 0 || c.World.ChunkHeight <= 0 {
		errs = append(errs, fmt.Errorf("world: chunk size %dx%d must be positive", c.World.ChunkWidth, c.World.ChunkHeight))
	}
	if c.World.ChunksX < 0 || c.World.ChunksY < 0 {
		errs = append(errs, fmt.Errorf("world: chunk grid %dx%d is negative", c.World.ChunksX, c.World.ChunksY))
	}
	if c.World.RandomFill < 0 || c.World.RandomFill > 1 {
		errs = append(errs, fmt.Errorf("world: random_fill %.2f outside [0,1]", c.World.RandomFill))
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 || c.Viewport.Scale <= 0 {
		errs = append(errs, fmt.Errorf("viewport: %dx%d at scale %d must be positive", c.Viewport.Width, c.Viewport.Height, c.Viewport.Scale))
	}
	if c.Viewport.BufferChunks < 0 {
		errs = append(errs, errors.New("viewport: buffer_chunks is negative"))
	}
	if c.Sim.TPS <= 0 {
		errs = append(errs, fmt.Errorf("sim: tps %d must be positive", c.Sim.TPS))
	}
	return errors.Join(errs...)
}

// TickInterval is the wall time between ticks at the configured rate.
func (c *Config) TickInterval() time.Duration {
	if c.Sim.TPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(c.Sim.TPS)
}
