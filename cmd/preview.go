package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/explain"
	"github.com/abhisek/drillpad/internal/grading"
	"github.com/abhisek/drillpad/internal/llm"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <page>",
	Short: "Drill one page on the command line (no database)",
	Long: `Answer the questions of one page line by line and see each grade.

This is a stateless tool: nothing is recorded and the notebook is not touched.
With --explain, wrong answers are sent for an explanation when an LLM
credential is configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("explain", false, "Ask for an explanation after each wrong answer")
}

func runPreview(cmd *cobra.Command, args []string) error {
	withExplain, _ := cmd.Flags().GetBool("explain")

	b, err := bankCache(cmd).Get()
	if err != nil {
		return fmt.Errorf("%s", bank.Describe(err))
	}
	p, ok := b.Page(args[0])
	if !ok {
		return fmt.Errorf("page %s does not exist", args[0])
	}

	var explainer *explain.Service
	ctx := context.Background()
	if withExplain {
		provider, err := llm.NewProviderFromEnv(ctx, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		}
		explainer = explain.NewService(provider, explain.DefaultConfig())
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(p.Label())
	fmt.Println()

	var correct, graded int
	for i, q := range p.Questions {
		fmt.Printf("── %s ──\n", q.Heading(i+1))
		fmt.Println(q.QuestionText)
		if q.Hints != "" {
			fmt.Printf("Hint: %s\n", q.Hints)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := scanner.Text()
		if strings.TrimSpace(answer) == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		res := grading.GradeQuestion(answer, q)
		switch res.Verdict {
		case grading.Correct:
			correct++
			graded++
			fmt.Printf("\033[32m✓ %s\033[0m\n", res.Notice.Text)
		case grading.Incorrect:
			graded++
			fmt.Printf("\033[31m✗ %s\033[0m\n", res.Notice.Text)
			if explainer != nil {
				printExplanation(ctx, explainer, q, answer)
			}
		default:
			fmt.Println(res.Notice.Text)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, graded)
	return nil
}

func printExplanation(ctx context.Context, s *explain.Service, q bank.Question, answer string) {
	if !s.Available() {
		fmt.Println("(explanations unavailable: no LLM credential)")
		return
	}
	fmt.Println("Asking for an explanation...")
	exp, err := s.Explain(ctx, explain.InputFor(q, answer))
	if err != nil {
		fmt.Printf("Could not get an explanation: %v\n", err)
		return
	}
	fmt.Println(exp.Text)
	if exp.Truncated {
		fmt.Println("(explanation cut short)")
	}
}
