package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker and the match archive",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode and Tab to open
the archive of matches finished in this run. Selecting an archived match
replays it.

Examples:
  snake menu
  snake menu --fps 30
  snake menu --difficulty easy --log-file ~/.snake-arena/snake.log`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := interactiveLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadMatchConfig(0)
	if err != nil {
		return err
	}
	configureGames(cfg, logger, nil)

	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := tui.RunSession(store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
