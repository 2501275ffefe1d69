package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arnav/wordwise/internal/dict"
	"github.com/arnav/wordwise/internal/llm"
	"github.com/arnav/wordwise/internal/logx"
	"github.com/arnav/wordwise/internal/store"
	"github.com/arnav/wordwise/internal/suggest"
	"github.com/arnav/wordwise/internal/vocab"
)

var addCmd = &cobra.Command{
	Use:   "add <word> [definition...]",
	Short: "Add a word to your vocabulary",
	Long: "Add a word. With no definition the dictionary is consulted first,\n" +
		"then the configured LLM provider. Words are stored once per meaning.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		word := args[0]
		definition := strings.TrimSpace(strings.Join(args[1:], " "))

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
		partOfSpeech := ""

		if definition == "" {
			definition, partOfSpeech, err = lookupDefinition(ctx, st, word)
			if err != nil {
				return err
			}
		}

		saved, err := st.WordRepo().Add(ctx, vocab.Word{
			Text:         word,
			Definition:   definition,
			PartOfSpeech: partOfSpeech,
		})
		if errors.Is(err, store.ErrDuplicate) {
			fmt.Printf("%q is already in your vocabulary with that definition.\n", vocab.FormatWord(word))
			return nil
		}
		if err != nil {
			return fmt.Errorf("save word: %w", err)
		}

		fmt.Printf("Added %q", saved.Text)
		if saved.PartOfSpeech != "" {
			fmt.Printf(" (%s)", saved.PartOfSpeech)
		}
		fmt.Printf(": %s\n", saved.Definition)
		return nil
	},
}

// lookupDefinition tries the dictionary first and falls back to the LLM.
func lookupDefinition(ctx context.Context, st *store.Store, word string) (definition, partOfSpeech string, err error) {
	entry, err := dict.NewClient().Lookup(ctx, word)
	if err == nil {
		if def, pos := entry.First(); def != "" {
			return def, pos, nil
		}
	} else if !errors.Is(err, dict.ErrNotFound) {
		fmt.Fprintln(os.Stderr, "Dictionary lookup failed:", err)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logx.Discard())
	if err != nil {
		return "", "", fmt.Errorf("no definition found for %q and no LLM provider configured; pass the definition explicitly", word)
	}

	s, err := suggest.NewService(provider, suggest.DefaultConfig()).Suggest(ctx, word)
	if err != nil {
		return "", "", fmt.Errorf("suggest definition: %w", err)
	}
	return s.Definition, s.PartOfSpeech, nil
}
