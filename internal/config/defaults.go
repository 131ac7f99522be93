package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/colormaze.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			NumPaths:   1,
			MinPathLen: 30,
			MaxPathLen: 50,
		},
		Timing: TimingConfig{
			OperationInterval: 200 * time.Millisecond,
			MaxGameTime:       60 * time.Second,
			TickRate:          60,
		},
		Input: InputConfig{
			Source:      "keyboard",
			Interpreter: "python",
		},
		Display: DisplayConfig{
			Mode: DisplayTUI,
		},
		Storage: StorageConfig{
			DBPath: "~/.colormaze/results.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Path: "default",
	}
}
