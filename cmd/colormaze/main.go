// colormaze is a terminal maze game: walk from the start to an exit,
// switching between two colors to match the tiles under your feet.
//
// Usage:
//
//	colormaze [script]     - Play; with a script, moves come from its output
//	colormaze map          - Generate and print a maze
//	colormaze results      - Show recorded runs
//	colormaze sources      - List input sources
//	colormaze config       - Print the effective configuration
//
// Global flags:
//
//	--config <path>  - Config file (default: search ~/.colormaze, ./configs, embedded)
//	--seed <value>   - Set RNG seed for a reproducible maze
//	--db <path>      - Set database path (default: ~/.colormaze/results.db)
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import input sources to register them
	_ "github.com/vovakirdan/colormaze/internal/input/keyboard"
	_ "github.com/vovakirdan/colormaze/internal/input/subprocess"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
	flagPaths    int
	flagMinLen   int
	flagMaxLen   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colormaze [script]",
	Short: "Color Maze - a two-color path puzzle in your terminal",
	Long: `Color Maze generates a maze of colored paths. Walk from the start to an
exit without stepping off the path or onto a tile of the other color.

Without arguments you play with the keyboard. With a script argument the
script is run with the configured interpreter and its output drives the
player: after a '#' marker it prints integer codes
  0 left   1 up   2 down   3 right   4 switch color   998 separator

Controls:
  W/A/S/D, arrows  - Move
  X, Space         - Switch color
  R                - New maze (after the game ended)
  Q/Ctrl+C         - Quit

Examples:
  colormaze
  colormaze --preset hard --seed 42
  colormaze --display text solver.py
  colormaze map --seed 42
  colormaze results`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	pf.StringVar(&flagDBPath, "db", "", "Path to results database (default from config)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.IntVar(&flagPaths, "paths", 0, "Number of paths (one exit each)")
	pf.IntVar(&flagMinLen, "min-len", 0, "Minimum path length")
	pf.IntVar(&flagMaxLen, "max-len", 0, "Maximum path length (exclusive)")

	rootCmd.Flags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second)")
	rootCmd.Flags().StringVar(&flagDisplay, "display", "", "Display: tui or text")
	rootCmd.Flags().StringVar(&flagInterpreter, "interpreter", "", "Interpreter for the script")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(sourcesCmd)
}
