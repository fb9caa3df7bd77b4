package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/games/snake"
	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

var flagPlayers int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode, or the mode matching --players.

Controls:
  Arrows     - Player 1
  W A S D    - Player 2 (also Player 1 when playing solo)
  I J K L    - Player 3
  T F G H    - Player 4
  P/Space    - Pause
  R          - Restart (after game over)
  V          - Replay the finished match
  B/Esc      - Leave (after game over or while paused)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 350ms per turn
  normal - 250ms per turn
  hard   - 120ms per turn

Examples:
  snake play
  snake play snake_duel
  snake play --players 4 --difficulty hard
  snake play snake --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayers, "players", 1, "Roster size when no mode is given (1-4)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID, ok := snake.ModeForPlayers(flagPlayers)
	if len(args) == 1 {
		gameID, ok = args[0], true
	}
	info, exists := registry.Info(gameID)
	if !ok || !exists {
		return fmt.Errorf("unknown mode %q, run 'snake list' to see available modes", gameID)
	}

	logger, closeLog, err := interactiveLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadMatchConfig(info.Players)
	if err != nil {
		return err
	}
	configureGames(cfg, logger, nil)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	printSummary(store, gameID)
	return nil
}

// printSummary reports the rounds archived during the run.
func printSummary(store *storage.Store, gameID string) {
	matches, err := store.RecentMatches(0)
	if err != nil || len(matches) == 0 {
		return
	}
	best, err := store.HighScore(gameID)
	if err != nil {
		return
	}
	fmt.Printf("Rounds played: %d, best: %d apples\n", len(matches), best)

	top, err := store.TopScores(gameID, 3)
	if err != nil || len(top) < 2 {
		return
	}
	for i, e := range top {
		fmt.Printf("  %d. %3d apples  %s\n", i+1, e.Score, e.CreatedAt.Format("15:04:05"))
	}
}
