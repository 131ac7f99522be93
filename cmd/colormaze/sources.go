package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colormaze/internal/registry"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List input sources",
	Long:  `Shows the input sources that can drive the player.`,
	Args:  cobra.NoArgs,
	Run:   runSources,
}

func runSources(_ *cobra.Command, _ []string) {
	sources := registry.List()

	if len(sources) == 0 {
		fmt.Println("No input sources available.")
		return
	}

	fmt.Println("Input sources:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, s := range sources {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, s := range sources {
		fmt.Printf("  %-*s  %s\n", maxNameLen, s.Name, s.Description)
	}

	fmt.Println()
	fmt.Println("Set input.source in the config; a script argument selects subprocess.")
}
