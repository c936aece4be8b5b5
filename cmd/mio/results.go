package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagResultsLimit int
	flagResultsClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [save]",
	Short: "Show recorded plays",
	Long: `Without a save, prints per-game statistics. With a save, prints its latest
plays.

Examples:
  mio results
  mio results jump --limit 20
  mio results jump --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of plays to show")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete the recorded plays of the save")
}

func runResults(_ *cobra.Command, args []string) error {
	store, err := openStore(true)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		stats, err := store.AllGameStats()
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No plays recorded yet.")
			return nil
		}
		fmt.Printf("  %-20s  %5s  %5s  %5s  %6s  %s\n", "Game", "Plays", "Wins", "Rate", "Best", "Last played")
		fmt.Printf("  %-20s  %5s  %5s  %5s  %6s  %s\n", "----", "-----", "----", "----", "----", "-----------")
		for _, g := range stats {
			best := "-"
			if g.BestFrames > 0 {
				best = fmt.Sprintf("%d", g.BestFrames)
			}
			fmt.Printf("  %-20s  %5d  %5d  %4.0f%%  %6s  %s\n",
				g.GameName, g.Plays, g.Wins, g.WinRate()*100, best, humanize.Time(g.LastPlayed))
		}
		return nil
	}

	game, err := openLibrary(store, newLogger("mio")).Resolve(args[0])
	if err != nil {
		return err
	}

	if flagResultsClear {
		if err := store.ClearResults(game.Hash); err != nil {
			return err
		}
		fmt.Printf("Cleared results of %s\n", game.Title)
		return nil
	}

	results, err := store.RecentResults(game.Hash, flagResultsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Results - %s\n", game.Title)
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No plays recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'mio play %s' to record the first one!\n", args[0])
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %6s  %-10s  %s\n", "#", "Outcome", "Frames", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %6s  %-10s  %s\n", "-", "-------", "------", "------", "----")
	for i, r := range results {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-7s  %6d  %-10s  %s\n",
			i+1, r.Outcome, r.Frames, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
