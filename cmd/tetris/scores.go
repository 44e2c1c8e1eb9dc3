package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score table",
	Long: `Display the top 10 scores.

Examples:
  tetris scores
  tetris scores clear`,
	Run: runScores,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded scores",
	Run:   runScoresClear,
}

func init() {
	scoresCmd.AddCommand(scoresClearCmd)
}

func runScores(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	scores, err := store.TopScores(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "Rank", "Score", "Level", "Lines", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "----", "-----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-6d  %-6d  %s\n",
			i+1, entry.Score, entry.Level, entry.Lines,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
}

func runScoresClear(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.ClearScores(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("All scores cleared.")
}
