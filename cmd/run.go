package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arnav/wordwise/internal/app"
	"github.com/arnav/wordwise/internal/dict"
	"github.com/arnav/wordwise/internal/grader"
	"github.com/arnav/wordwise/internal/llm"
	"github.com/arnav/wordwise/internal/logx"
	"github.com/arnav/wordwise/internal/session"
	"github.com/arnav/wordwise/internal/store"
	"github.com/arnav/wordwise/internal/suggest"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	_ = godotenv.Load()

	log, closeLog, err := logx.Setup()
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closeLog()

	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	words := st.WordRepo()
	events := st.EventRepo()

	deps := app.Deps{
		Words:  words,
		Events: events,
		Dict:   dict.NewClient(),
		Log:    log,
	}

	// The app works without a provider; sentence grading and definition
	// suggestions degrade gracefully.
	var provider llm.Provider
	provider, err = llm.NewProviderFromEnv(ctx, events, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Sentence grading and definition suggestions will be unavailable.")
		provider = nil
	} else {
		deps.Suggest = suggest.NewService(provider, suggest.DefaultConfig())
	}

	deps.Ctrl = session.NewController(words, nil, log)
	deps.Grader = grader.New(provider, grader.DefaultConfig(), log)

	return app.Run(deps)
}
