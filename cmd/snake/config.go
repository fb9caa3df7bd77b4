package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective match configuration",
	Long: `Resolve --config and --difficulty the same way play does and print
the result as YAML. Useful as a starting point for a custom config:

  snake config --difficulty hard > ~/.snake-arena/configs/snake.yaml

With --default the embedded default file is printed unchanged.`,
	RunE: runConfig,
}

var flagConfigDefault bool

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the embedded default config")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefault {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}
	cfg, err := loadMatchConfig(0)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
