package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Browse the question bank",
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the pages of the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bankCache(cmd).Get()
		if err != nil {
			return fmt.Errorf("%s", bank.Describe(err))
		}

		fmt.Printf("%-10s  %9s  %9s  %s\n", "Page", "Questions", "Answered", "Exercises")
		fmt.Println(strings.Repeat("─", 72))

		for _, p := range b.Pages() {
			answered := 0
			var blocks []string
			seen := make(map[string]bool)
			for _, q := range p.Questions {
				if q.HasAnswer() {
					answered++
				}
				if blk := q.Block(); !seen[blk] {
					seen[blk] = true
					blocks = append(blocks, blk)
				}
			}
			fmt.Printf("%-10s  %9d  %9d  %s\n",
				p.Key, len(p.Questions), answered, truncate(strings.Join(blocks, ", "), 40))
		}

		fmt.Printf("\n%d pages, %d questions\n", b.Len(), b.QuestionCount())
		return nil
	},
}

var pagesShowCmd = &cobra.Command{
	Use:   "show <page>",
	Short: "Print the questions of one page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		b, err := bankCache(cmd).Get()
		if err != nil {
			return fmt.Errorf("%s", bank.Describe(err))
		}
		p, ok := b.Page(args[0])
		if !ok {
			return fmt.Errorf("page %s does not exist", args[0])
		}

		fmt.Println(p.Label())
		fmt.Println(strings.Repeat("─", 60))
		for i, q := range p.Questions {
			fmt.Printf("%s\n  %s\n", q.Heading(i+1), q.QuestionText)
			if q.Hints != "" {
				fmt.Printf("  Hint: %s\n", q.Hints)
			}
			if answers {
				if q.HasAnswer() {
					fmt.Printf("  Answer: %s\n", q.AnswerText())
				} else {
					fmt.Println("  Answer: (none)")
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	pagesShowCmd.Flags().Bool("answers", false, "Also print the reference answers")

	pagesCmd.AddCommand(pagesListCmd)
	pagesCmd.AddCommand(pagesShowCmd)
}
