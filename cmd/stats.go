package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arnav/wordwise/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()

		words, err := st.WordRepo().List(ctx)
		if err != nil {
			return fmt.Errorf("list words: %w", err)
		}

		var attempted, correct, total int
		for _, w := range words {
			if w.Stats.Attempts() > 0 {
				attempted++
			}
			correct += w.Stats.Correct
			total += w.Stats.Attempts()
		}

		fmt.Println("Vocabulary")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("Words:      %d\n", len(words))
		fmt.Printf("Practiced:  %d\n", attempted)
		if total > 0 {
			fmt.Printf("Accuracy:   %.0f%% (%d/%d attempts)\n",
				float64(correct)/float64(total)*100, correct, total)
		}

		stats, err := st.EventRepo().SessionStats(ctx)
		if err != nil {
			return fmt.Errorf("session stats: %w", err)
		}

		fmt.Println()
		fmt.Println("Sessions")
		fmt.Println(strings.Repeat("─", 40))
		if stats.Sessions == 0 {
			fmt.Println("No sessions played yet.")
			return nil
		}
		fmt.Printf("Played:     %d\n", stats.Sessions)
		fmt.Printf("Best:       %d/%d\n", stats.BestScore, stats.BestTotal)
		fmt.Printf("Last:       %s\n", stats.LastPlayedAt.Local().Format("2006-01-02 15:04"))

		recent, err := st.EventRepo().ListSessions(ctx, 10)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		fmt.Println()
		fmt.Printf("%-19s  %-18s  %s\n", "Finished", "Mode", "Score")
		fmt.Println(strings.Repeat("─", 48))
		for _, s := range recent {
			fmt.Printf("%-19s  %-18s  %d/%d\n",
				s.FinishedAt.Local().Format("2006-01-02 15:04"), s.Mode, s.Score, s.Total)
		}
		return nil
	},
}
