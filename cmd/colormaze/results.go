package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/colormaze/internal/game"
	"github.com/vovakirdan/colormaze/internal/platform/tui"
	"github.com/vovakirdan/colormaze/internal/render"
	"github.com/vovakirdan/colormaze/internal/storage"
)

var (
	flagPlain   bool
	flagFastest bool
	flagLimit   int
	flagRunID   string
	flagClear   bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recorded runs",
	Long: `Show the runs recorded in the results database.

In a terminal an interactive table is shown; use --plain (or pipe the
output) for text.

Examples:
  colormaze results
  colormaze results --plain --fastest
  colormaze results --id 3f0c...
  colormaze results --clear`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table")
	resultsCmd.Flags().BoolVar(&flagFastest, "fastest", false, "List the fastest escapes instead of recent runs")
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to list")
	resultsCmd.Flags().StringVar(&flagRunID, "id", "", "Show a single run")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runResults(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil

	case flagRunID != "":
		run, err := store.RunByID(flagRunID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no run with id %q", flagRunID)
		}
		printRun(*run)
		return nil
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunResults(store, width, height)
	}

	var runs []storage.Run
	if flagFastest {
		runs, err = store.FastestFinishes(flagLimit)
	} else {
		runs, err = store.RecentRuns(flagLimit)
	}
	if err != nil {
		return err
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}

	if flagFastest {
		fmt.Println("Fastest escapes")
	} else {
		fmt.Println("Recent runs")
	}
	fmt.Println(tui.StatsLine(stats))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'colormaze' to play a maze.")
		return nil
	}

	// Print header
	const row = "  %-4s  %-8s  %-14s  %-7s  %-5s  %-7s  %-10s  %s\n"
	fmt.Printf(row, "#", "Outcome", "Reason", "Time", "Moves", "Size", "Source", "Date")
	fmt.Printf(row, "-", "-------", "------", "----", "-----", "----", "------", "----")

	for i, r := range runs {
		cells := tui.RunRow(i+1, r)
		fmt.Printf(row, cells[0], cells[1], cells[2], cells[3], cells[4], cells[5], cells[6], cells[7])
	}
	return nil
}

func printRun(r storage.Run) {
	fmt.Printf("ID:       %s\n", r.ID)
	fmt.Printf("Outcome:  %s (%s)\n", r.Outcome, r.Reason)
	if reason := game.ParseReason(r.Reason); reason != game.ReasonNone {
		fmt.Printf("          %s\n", render.Status(game.Snapshot{Reason: reason}))
	}
	fmt.Printf("Time:     %.1fs\n", r.Elapsed.Seconds())
	fmt.Printf("Moves:    %d\n", r.Moves)
	fmt.Printf("Maze:     %dx%d, %d paths\n", r.Width, r.Height, r.NumPaths)
	fmt.Printf("Source:   %s\n", r.Source)
	if r.Seed != 0 {
		fmt.Printf("Seed:     %d\n", r.Seed)
	}
	fmt.Printf("Date:     %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
}
