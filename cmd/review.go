package cmd

import (
	"context"
	"fmt"

	"github.com/abiraja/parley/internal/store"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Print the recorded mistake log",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		rows, err := s.MistakeRepo().ListAll(context.Background())
		if err != nil {
			return fmt.Errorf("list mistakes: %w", err)
		}

		if len(rows) == 0 {
			fmt.Println("No mistakes recorded. Excellent work!")
			return nil
		}

		fmt.Println("Mistake Review:")
		fmt.Println()
		for i, m := range rows {
			fmt.Printf("%d. You said: '%s'\n", i+1, m.UserInput)
			fmt.Printf("   Mistake: '%s' → Correction: '%s'\n", m.Mistake, m.Correction)
			fmt.Printf("   Recorded: %s\n", m.Timestamp.Format(store.TimestampLayout))
			fmt.Println()
		}

		if len(rows) > 2 {
			fmt.Println("Focus Area: Verb conjugation and vocabulary improvement.")
		} else {
			fmt.Println("Focus Area: Keep practicing!")
		}
		return nil
	},
}
