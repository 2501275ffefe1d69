package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arnav/wordwise/internal/store"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List your vocabulary",
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

		words, err := st.WordRepo().List(context.Background())
		if err != nil {
			return fmt.Errorf("list words: %w", err)
		}

		if len(words) == 0 {
			fmt.Println("No words yet. Add one with: wordwise add <word>")
			return nil
		}

		fmt.Printf("%-20s  %-12s  %8s  %s\n", "Word", "POS", "Accuracy", "Definition")
		fmt.Println(strings.Repeat("─", 90))

		for _, w := range words {
			acc := "—"
			if w.Stats.Attempts() > 0 {
				acc = fmt.Sprintf("%.0f%%", w.Stats.Accuracy()*100)
			}
			def := w.Definition
			if len(def) > 48 {
				def = def[:45] + "..."
			}
			fmt.Printf("%-20s  %-12s  %8s  %s\n", w.Text, w.PartOfSpeech, acc, def)
		}

		fmt.Printf("\n%d words\n", len(words))
		return nil
	},
}
