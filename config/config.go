// Package config loads the game settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"narrowtris/tetris"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Gravity GravityConfig `yaml:"gravity"`
	Logging LoggingConfig `yaml:"logging"`
	Seed    uint64        `yaml:"seed"`
	NoGhost bool          `yaml:"no_ghost"`
}

type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

type TimingConfig struct {
	DropInterval  time.Duration `yaml:"drop_interval"`
	ClearDuration time.Duration `yaml:"clear_duration"`
	DASDelay      time.Duration `yaml:"das_delay"`
	ARRInterval   time.Duration `yaml:"arr_interval"`
}

type GravityConfig struct {
	// Levels speeds gravity up every 10 lines instead of using DropInterval.
	Levels     bool `yaml:"levels"`
	StartLevel int  `yaml:"start_level"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() *Config {
	o := tetris.DefaultOptions()
	return &Config{
		Board: BoardConfig{Rows: o.Rows, Cols: o.Cols},
		Timing: TimingConfig{
			DropInterval:  o.DropInterval,
			ClearDuration: o.ClearDuration,
			DASDelay:      o.DASDelay,
			ARRInterval:   o.ARRInterval,
		},
		Gravity: GravityConfig{StartLevel: o.StartLevel},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the file at path on top of the defaults. Keys missing from the
// file keep their default value, unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Options converts the config into the game's options.
func (c *Config) Options() tetris.Options {
	return tetris.Options{
		Rows:          c.Board.Rows,
		Cols:          c.Board.Cols,
		DropInterval:  c.Timing.DropInterval,
		ClearDuration: c.Timing.ClearDuration,
		DASDelay:      c.Timing.DASDelay,
		ARRInterval:   c.Timing.ARRInterval,
		LevelGravity:  c.Gravity.Levels,
		StartLevel:    c.Gravity.StartLevel,
		Seed:          c.Seed,
	}
}

func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}
