package cmd

import (
	"fmt"
	"os"

	"github.com/abiraja/parley/internal/app"
	"github.com/abiraja/parley/internal/llm"
	"github.com/abiraja/parley/internal/store"
	"github.com/abiraja/parley/internal/tutor"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	provider, err := llm.NewProviderFromEnv(ctx, st.LLMEventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set an API key (e.g. ANTHROPIC_API_KEY or OPENROUTER_API_KEY) and try again.")
		return fmt.Errorf("no LLM provider available")
	}

	mistakes := st.MistakeRepo()
	return app.Run(app.Options{
		Engine:   tutor.New(provider, mistakes, tutor.DefaultConfig()),
		Mistakes: mistakes,
	})
}
