// snake is a multiplayer hot-seat snake arena for the terminal.
//
// Usage:
//
//	snake list              - List available modes
//	snake play [mode]       - Play a mode directly
//	snake menu              - Pick modes and browse the match archive interactively
//	snake serve             - Start SSH server for remote play
//	snake sim               - Run a headless match with random steering
//	snake config            - Print the effective match configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Load match settings from a YAML file
//	--difficulty <name>  - Turn speed preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/snake-arena/internal/games/snake"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake Arena - multiplayer snake in your terminal",
	Long: `Snake Arena is a turn-based snake game for one to four players
sharing a keyboard, locally or over SSH.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker with the match archive
  serve    - Start SSH server for remote play
  sim      - Run a headless match and print the result
  config   - Print the effective configuration

Examples:
  snake list
  snake play snake_duel
  snake menu --difficulty hard
  snake serve --ssh :2222 --metrics :9090
  snake sim --players 4 --seed 42`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs of interactive commands to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
