package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/colormaze/internal/core"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in increasing difficulty.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset validates a preset name. The empty string is normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown preset %q (easy, normal, hard)", ErrInvalid, s)
}

// LevelForPreset returns the difficulty level (0.0 to 1.0) of a preset.
func LevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyHard:
		return 1.0
	default:
		return 0.5
	}
}

// Bounds of the difficulty scale. Level 0.5 reproduces the defaults.
var (
	easiest = scale{numPaths: 1, minLen: 15, maxLen: 25, maxGameTime: 90 * time.Second}
	hardest = scale{numPaths: 1, minLen: 45, maxLen: 75, maxGameTime: 30 * time.Second}
)

type scale struct {
	numPaths       int
	minLen, maxLen int
	maxGameTime    time.Duration
}

// ApplyPreset modifies the maze and timing sections for a difficulty
// preset. Longer paths mean more color switches; the time budget shrinks.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	level := LevelForPreset(preset)

	cfg.Maze.NumPaths = max(cfg.Maze.NumPaths, easiest.numPaths)
	cfg.Maze.MinPathLen = lerpInt(easiest.minLen, hardest.minLen, level)
	cfg.Maze.MaxPathLen = lerpInt(easiest.maxLen, hardest.maxLen, level)
	cfg.Timing.MaxGameTime = time.Duration(lerpInt(int(easiest.maxGameTime), int(hardest.maxGameTime), level))

	// Hard mazes carve two paths.
	if preset == DifficultyHard {
		cfg.Maze.NumPaths = max(cfg.Maze.NumPaths, 2)
	}
}

func lerpInt(a, b int, t float64) int {
	return a + int(float64(b-a)*core.ClampF(t, 0, 1))
}
