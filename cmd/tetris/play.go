package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/runtime"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagNoGhost  bool
	flagNoReplay bool
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a game in the current terminal.

Controls:
  A/H/Left    - Move left
  D/L/Right   - Move right
  S/J/Down    - Soft drop
  W/K/X/Up    - Rotate clockwise
  Z           - Rotate counter-clockwise
  Space       - Hard drop
  P/Esc       - Pause
  Q/Ctrl+C    - Quit

The finished session's score and replay are saved to the database.

Examples:
  tetris play
  tetris play --seed 42
  tetris play --no-ghost --no-replay
  tetris play --config ./my-rules.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoGhost, "no-ghost", false, "Hide the landing preview")
	playCmd.Flags().BoolVar(&flagNoReplay, "no-replay", false, "Do not record a replay")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write debug logs to this file")
}

func runPlay(cmd *cobra.Command, args []string) {
	params, err := loadParams()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := playLogger()
	defer closeLog()

	// Open storage; the game still works without it.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: play requires an interactive terminal")
		os.Exit(1)
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot enter raw mode: %v\n", err)
		os.Exit(1)
	}

	// Alternate screen with hidden cursor; restored before the summary
	// is printed.
	fmt.Print("\x1b[?1049h\x1b[?25l")
	restore := func() {
		fmt.Print("\x1b[?25h\x1b[?1049l")
		term.Restore(fd, oldState) //nolint:errcheck // Best-effort restore
	}
	defer restore()

	screen := core.NewScreen(
		params.BoardWidth*2+20,
		params.BoardHeight+3,
	)
	render := func(st game.State) {
		tui.DrawGame(screen, st, tui.ViewOptions{
			ShowGhost: !flagNoGhost,
			Footer:    "move a/d  rotate w/z  drop space  pause p  quit q",
		})
		// Raw mode needs explicit carriage returns.
		out := strings.ReplaceAll(tui.RenderScreen(screen), "\n", "\r\n")
		fmt.Print("\x1b[H" + out)
	}

	engine := runtime.New(runtime.Options{
		Params: params,
		Supply: game.RandomSupplier(seed),
		Record: !flagNoReplay,
		Render: render,
		Logger: logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keyboard := runtime.NewKeyboardSource(os.Stdin)
	go keyboard.Run(ctx, engine)

	runErr := engine.Run(ctx)
	cancel()
	restore()

	if runErr != nil && runErr != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}

	final := engine.State()
	fmt.Printf("Score %d  Level %d  Lines %d\n", final.Score, final.Level, final.Lines)

	if store == nil || final.Score == 0 {
		return
	}
	if _, err := store.SaveScore(final.Score, final.Level, final.Lines); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save score: %v\n", err)
	}
	if data := engine.ReplayData(); data != nil {
		id, err := store.SaveReplay(*data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save replay: %v\n", err)
		} else {
			fmt.Printf("Replay saved. Watch it with: tetris watch %d\n", id)
		}
	}
}

// playLogger builds the session logger. Logs are discarded unless --log
// names a file, so they never garble the raw-mode display.
func playLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}
