package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question bank and notebook statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := bankCache(cmd)
		fmt.Println("Question bank")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-22s %s\n", "File", cache.Path())

		if b, err := cache.Get(); err != nil {
			fmt.Printf("%-22s %s\n", "Status", bank.Describe(err))
		} else {
			answered, hinted := 0, 0
			for _, p := range b.Pages() {
				for _, q := range p.Questions {
					if q.HasAnswer() {
						answered++
					}
					if q.Hints != "" {
						hinted++
					}
				}
			}
			fmt.Printf("%-22s %d\n", "Pages", b.Len())
			fmt.Printf("%-22s %d\n", "Questions", b.QuestionCount())
			fmt.Printf("%-22s %d\n", "With reference answer", answered)
			fmt.Printf("%-22s %d\n", "With hints", hinted)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		fmt.Println()
		fmt.Println("Notebook exports")
		fmt.Println(strings.Repeat("─", 40))

		latest, err := s.NotebookRepo().Latest(ctx)
		if err != nil {
			return fmt.Errorf("query exports: %w", err)
		}
		if latest == nil {
			fmt.Println("No exports yet.")
			return nil
		}
		all, err := s.NotebookRepo().List(ctx, 0)
		if err != nil {
			return fmt.Errorf("query exports: %w", err)
		}
		fmt.Printf("%-22s %d\n", "Exports", len(all))
		fmt.Printf("%-22s %s (%d questions)\n", "Latest",
			latest.Timestamp.Local().Format("2006-01-02 15:04"), latest.ItemCount)
		return nil
	},
}
