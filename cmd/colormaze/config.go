package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colormaze/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file, the preset and the flags
were applied, as YAML. Save it to ~/.colormaze/config.yaml to start a
custom config.

Examples:
  colormaze config
  colormaze config --preset hard > ~/.colormaze/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s\n", cfg.Path)
	fmt.Print(string(data))
	return nil
}
