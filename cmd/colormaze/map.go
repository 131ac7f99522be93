package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/game"
	"github.com/vovakirdan/colormaze/internal/maze"
	"github.com/vovakirdan/colormaze/internal/random"
	"github.com/vovakirdan/colormaze/internal/render"
)

var flagBoard bool

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Generate and print a maze",
	Long: `Generate a maze with the configured parameters and print it.

Legend:
  S start   E exit   A/B colored tile   . neutral tile   # no tile

Examples:
  colormaze map
  colormaze map --seed 42 --paths 3
  colormaze map --board`,
	Args: cobra.NoArgs,
	RunE: runMap,
}

func init() {
	mapCmd.Flags().BoolVar(&flagBoard, "board", false, "Print the board as drawn in game instead of ASCII")
}

func runMap(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m, err := maze.Generate(cfg.Maze.Params(), random.NewSeeded(cfg.Maze.Seed))
	if err != nil {
		return err
	}

	fmt.Println(m.Info())
	fmt.Println()

	if flagBoard {
		w, h := render.Size(m)
		scr := core.NewScreen(w, h)
		st := game.New(m, time.Now(), game.WithMaxGameTime(cfg.Timing.MaxGameTime))
		render.Board(scr, m, st.Snapshot(), render.Discrete())
		fmt.Println(scr.String())
		return nil
	}

	fmt.Println(m.String())
	return nil
}
