package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/storage"
)

var (
	flagBest  bool
	flagLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent or best runs",
	Long: `Display the finished runs of a profile, newest first, or ranked by
survival time with --best.

Examples:
  blocktown history
  blocktown history --best --limit 5
  blocktown history --profile alice`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagBest, "best", false, "Rank by time survived, then kills")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := openStore(ctx)
	defer store.Close()

	var (
		runs  []storage.RunRecord
		err   error
		title = "Recent runs"
	)
	if flagBest {
		title = "Best runs"
		runs, err = store.BestRuns(ctx, flagProfile, flagLimit)
	} else {
		runs, err = store.RecentRuns(ctx, flagProfile, flagLimit)
	}
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("%s - %s\n", title, flagProfile)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blocktown play' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-20s  %-10s  %-6s  %-5s  %-3s  %s\n",
		"Rank", "When", "Map", "Character", "Time", "Kills", "Lvl", "Earned")
	fmt.Printf("  %-4s  %-16s  %-20s  %-10s  %-6s  %-5s  %-3s  %s\n",
		"----", "----", "---", "---------", "----", "-----", "---", "------")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %-20s  %-10s  %-6s  %-5d  %-3d  $%s\n",
			i+1, humanize.Time(r.CreatedAt), r.Map, r.Character,
			formatSeconds(r.Report.TimeSurvived), r.Report.EnemiesKilled, r.Report.LevelReached,
			humanize.Comma(int64(r.Report.MoneyEarned)))
	}
}

// formatSeconds formats whole seconds as mm:ss.
func formatSeconds(s int) string {
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
