package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/colormaze/internal/config"
	"github.com/vovakirdan/colormaze/internal/storage"
)

// loadConfig reads the config file, applies the preset and then every
// flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Maze.Seed = flagSeed
	}
	if flags.Changed("paths") {
		cfg.Maze.NumPaths = flagPaths
	}
	if flags.Changed("min-len") {
		cfg.Maze.MinPathLen = flagMinLen
	}
	if flags.Changed("max-len") {
		cfg.Maze.MaxPathLen = flagMaxLen
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.Timing.TickRate = flagFPS
	}
	if flags.Lookup("display") != nil && flags.Changed("display") {
		cfg.Display.Mode = flagDisplay
	}
	if flags.Lookup("interpreter") != nil && flags.Changed("interpreter") {
		cfg.Input.Interpreter = flagInterpreter
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the session logger. In TUI mode the terminal belongs to
// the UI, so logs go to the log file or nowhere.
func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.Log.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case cfg.Display.Mode == config.DisplayTUI:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "colormaze",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the results database. Failure is not fatal: the game
// still works without storage.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	if cfg.Storage.Disabled {
		return nil
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		return nil
	}
	return store
}
