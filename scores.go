package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/shatter/storage"
)

var (
	flagScoresLimit int
	flagScoresMode  string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show stored high scores",
	Long: `Display the best stored matches, highest score first.

Examples:
  shatter scores
  shatter scores --mode play --limit 20`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of matches to show")
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only show matches from play, run or serve")
}

func runScores(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := storage.Open(dbPath())
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.TopScores(ctx, flagScoresMode, flagScoresLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No matches recorded yet.")
		fmt.Fprintln(out, "Run 'shatter play' or 'shatter run' to set the first score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-7s  %-9s  %-20s  %s\n", "Rank", "Score", "Mode", "Time", "Seed", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-7s  %-9s  %-20s  %s\n", "----", "-----", "----", "----", "----", "----")
	for i, r := range records {
		fmt.Fprintf(out, "  %-4d  %-6d  %-7s  %-9s  %-20d  %s\n",
			i+1, r.Score, r.Mode, fmt.Sprintf("%.1fs", r.DurationSec), r.Seed,
			r.EndedAt.Local().Format("2006-01-02 15:04"))
	}

	if flagScoresMode != "" {
		st, err := store.ModeStats(ctx, flagScoresMode)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n  %d matches, average score %.1f, average length %.0f ticks\n",
			st.Matches, st.AvgScore, st.AvgTicks)
	}
	return nil
}
