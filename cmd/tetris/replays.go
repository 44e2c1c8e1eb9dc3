package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagExportOut string

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse, export and import replays",
	Long: `Open an interactive browser over the stored replays. Highlight one
and press Enter to watch it, or D to delete it.

Subcommands handle non-interactive use:
  list            - Print the replay table
  delete <id>     - Delete a replay
  export <id>     - Write a replay to a JSON file
  import <file>   - Load a replay from a JSON file

Examples:
  tetris replays
  tetris replays list
  tetris replays export 3 -o run.json
  tetris replays import run.json`,
	Run: runReplaysBrowser,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the replay table",
	Run:   runReplaysList,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

var replaysExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a replay to a JSON file",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysExport,
}

var replaysImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a replay from a JSON file",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysImport,
}

func init() {
	replaysExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default: replay-<id>.json)")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
	replaysCmd.AddCommand(replaysExportCmd)
	replaysCmd.AddCommand(replaysImportCmd)
}

// openStore opens the database or exits with an error message.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// parseReplayID parses a replay ID argument or exits.
func parseReplayID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay ID %q\n", arg)
		os.Exit(1)
	}
	return id
}

func runReplaysBrowser(cmd *cobra.Command, args []string) {
	params, err := loadParams()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if err := tui.RunBrowser(store, params, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReplaysList(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	summaries, err := store.ListReplays(50)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing replays: %v\n", err)
		os.Exit(1)
	}

	if len(summaries) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' and finish a game to record one.")
		return
	}

	fmt.Printf("  %-6s  %-16s  %-8s  %-6s  %-6s  %s\n", "ID", "Date", "Score", "Level", "Lines", "Length")
	fmt.Printf("  %-6s  %-16s  %-8s  %-6s  %-6s  %s\n", "--", "----", "-----", "-----", "-----", "------")
	for _, rs := range summaries {
		fmt.Printf("  %-6d  %-16s  %-8d  %-6d  %-6d  %s\n",
			rs.ID,
			rs.StartedAt.Format("2006-01-02 15:04"),
			rs.FinalScore,
			rs.FinalLevel,
			rs.FinalLines,
			rs.Duration.Truncate(1e9),
		)
	}
}

func runReplaysDelete(cmd *cobra.Command, args []string) {
	id := parseReplayID(args[0])

	store := openStore()
	defer store.Close()

	if err := store.DeleteReplay(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no replay with ID %d\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "Error deleting replay: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("Replay %d deleted.\n", id)
}

func runReplaysExport(cmd *cobra.Command, args []string) {
	id := parseReplayID(args[0])

	store := openStore()
	defer store.Close()

	data, err := store.LoadReplay(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no replay with ID %d\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		}
		os.Exit(1)
	}

	raw, err := replay.EncodeJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding replay: %v\n", err)
		os.Exit(1)
	}

	out := flagExportOut
	if out == "" {
		out = fmt.Sprintf("replay-%d.json", id)
	}
	if err := os.WriteFile(out, raw, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("Replay %d exported to %s\n", id, out)
}

func runReplaysImport(cmd *cobra.Command, args []string) {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	data, err := replay.DecodeJSON(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding replay: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer store.Close()

	id, err := store.SaveReplay(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving replay: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Replay imported with ID %d. Watch it with: tetris watch %d\n", id, id)
}
