// Package config provides YAML-based configuration loading and difficulty
// presets for the maze game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormaze/internal/maze"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("config: invalid")

// Display modes.
const (
	DisplayTUI  = "tui"
	DisplayText = "text"
)

// Config contains all configuration for a game session.
type Config struct {
	Maze    MazeConfig    `yaml:"maze"`
	Timing  TimingConfig  `yaml:"timing"`
	Input   InputConfig   `yaml:"input"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`

	// Path is the file the configuration was read from, or "embedded".
	Path string `yaml:"-"`
}

// MazeConfig defines generation parameters.
type MazeConfig struct {
	NumPaths   int   `yaml:"num_paths"`
	MinPathLen int   `yaml:"min_path_len"`
	MaxPathLen int   `yaml:"max_path_len"`
	Seed       int64 `yaml:"seed"` // 0 = random
}

// Params converts the section into generator parameters.
func (m MazeConfig) Params() maze.Params {
	return maze.Params{
		NumPaths:   m.NumPaths,
		MinPathLen: m.MinPathLen,
		MaxPathLen: m.MaxPathLen,
	}
}

// TimingConfig defines the game clock.
type TimingConfig struct {
	OperationInterval time.Duration `yaml:"operation_interval"`
	MaxGameTime       time.Duration `yaml:"max_game_time"`
	TickRate          int           `yaml:"tick_rate"`
}

// InputConfig selects the input source.
type InputConfig struct {
	Source      string `yaml:"source"`      // registry name
	Interpreter string `yaml:"interpreter"` // subprocess source only
	Script      string `yaml:"script"`      // subprocess source only
}

// DisplayConfig selects the displayer.
type DisplayConfig struct {
	Mode string `yaml:"mode"` // "tui" or "text"
}

// StorageConfig defines where run results are kept.
type StorageConfig struct {
	DBPath   string `yaml:"db_path"`
	Disabled bool   `yaml:"disabled"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty = stderr, or discarded in tui mode
}

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	if err := c.Maze.Params().Validate(); err != nil {
		return fmt.Errorf("%w: maze: %v", ErrInvalid, err)
	}
	if c.Timing.OperationInterval <= 0 {
		return fmt.Errorf("%w: timing.operation_interval must be positive, got %v", ErrInvalid, c.Timing.OperationInterval)
	}
	if c.Timing.MaxGameTime <= 0 {
		return fmt.Errorf("%w: timing.max_game_time must be positive, got %v", ErrInvalid, c.Timing.MaxGameTime)
	}
	if c.Timing.TickRate < 1 || c.Timing.TickRate > 240 {
		return fmt.Errorf("%w: timing.tick_rate must be in [1, 240], got %d", ErrInvalid, c.Timing.TickRate)
	}
	if c.Input.Source == "" {
		return fmt.Errorf("%w: input.source is empty", ErrInvalid)
	}
	switch c.Display.Mode {
	case DisplayTUI, DisplayText:
	default:
		return fmt.Errorf("%w: display.mode must be %q or %q, got %q", ErrInvalid, DisplayTUI, DisplayText, c.Display.Mode)
	}
	if !c.Storage.Disabled && c.Storage.DBPath == "" {
		return fmt.Errorf("%w: storage.db_path is empty", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}
