package cmd

import (
	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "drillpad",
	Short: "French exercise drills with grading and a wrong-answer notebook",
	Long: `drillpad - practise the exercises of a French workbook page by page.

Answers are checked against the book's reference answers. Questions you miss
can be bookmarked into a notebook, exported and imported again later.

Explanations of wrong answers need an LLM credential. Set GITHUB_TOKEN (or
DRILLPAD_GITHUB_TOKEN, ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY,
OPENROUTER_API_KEY) to enable them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DRILLPAD_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to the question bank (overrides DRILLPAD_BANK env var)")
	rootCmd.PersistentFlags().Bool("reload", false, "Re-read the question bank on every access instead of caching it")
	rootCmd.Flags().String("export-dir", ".", "Directory notebook exports are written to")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(notebookCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DRILLPAD_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// bankCache builds the bank cache from --bank, DRILLPAD_BANK or the
// default file, honouring --reload.
func bankCache(cmd *cobra.Command) *bank.Cache {
	path, _ := cmd.Flags().GetString("bank")
	if path == "" {
		path = bank.DefaultPath()
	}
	reload, _ := cmd.Flags().GetBool("reload")
	return bank.NewCache(path, reload)
}
