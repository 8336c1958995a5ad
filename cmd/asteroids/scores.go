package main

import (
	"fmt"

	"github.com/plus3/skirmish/scores"
	"github.com/spf13/cobra"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Args:  cobra.NoArgs,
	RunE:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := scores.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.TopRuns(gameID, flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores - Asteroids")
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet. Play 'asteroids play' to set the first one!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-8s  %-4s  %-8s  %-10s  %s\n", "Rank", "Score", "Time", "Hits", "Breaches", "Ended", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-8s  %-4s  %-8s  %-10s  %s\n", "----", "-----", "----", "----", "--------", "-----", "----")
	for i, run := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-8s  %-4d  %-8d  %-10s  %s\n",
			i+1, run.Score, run.Elapsed.Truncate(100e6), run.Hits, run.Breaches, run.Reason,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
