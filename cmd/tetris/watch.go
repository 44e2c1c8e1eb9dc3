package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch <replay-id>",
	Short: "Watch a stored replay",
	Long: `Play back a stored replay in the terminal.

Playback controls:
  Space/P     - Pause / resume
  Right/N     - Step one frame (while paused)
  +/-         - Speed up / slow down
  Q/Esc       - Quit

Run 'tetris replays' to list stored replays.

Examples:
  tetris watch 3`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay ID %q\n", args[0])
		os.Exit(1)
	}

	params, err := loadParams()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	data, err := store.LoadReplay(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no replay with ID %d\n", id)
			fmt.Fprintln(os.Stderr, "Run 'tetris replays' to list stored replays.")
		} else {
			fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		}
		os.Exit(1)
	}

	if err := tui.RunWatch(data, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error during playback: %v\n", err)
		os.Exit(1)
	}
}
