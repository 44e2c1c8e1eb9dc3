// tetris is a terminal falling-block game with deterministic replays.
//
// Usage:
//
//	tetris play              - Play in the current terminal
//	tetris watch <id>        - Watch a stored replay
//	tetris replays           - Browse, export and import replays
//	tetris scores            - Show the high-score table
//	tetris serve             - Start an SSH server for remote play
//
// Global flags:
//
//	--db <path>      - Database path (default: ~/.tetris/tetris.db)
//	--seed <value>   - RNG seed for reproducible piece sequences
//	--config <path>  - Path to a custom config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/game"
)

var (
	// Global flags
	flagDBPath string
	flagSeed   int64
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal, with recorded replays",
	Long: `A terminal falling-block game. Every finished session is saved as a
score plus a deterministic replay that can be watched, exported and
shared.

Available commands:
  play     - Play in the current terminal
  watch    - Watch a stored replay
  replays  - Browse, export and import replays
  scores   - View the high-score table
  serve    - Start an SSH server for remote play

Examples:
  tetris play
  tetris play --seed 42
  tetris watch 3
  tetris replays export 3 -o run.json
  tetris serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/tetris.db", "Path to the database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadParams resolves the game tunables from the config search path,
// honoring the --config flag.
func loadParams() (game.Params, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return game.Params{}, err
	}
	if err := cfg.Validate(); err != nil {
		return game.Params{}, err
	}
	return cfg.Params(), nil
}
