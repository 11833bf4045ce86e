package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/drillpad/internal/actions"
	"github.com/abhisek/drillpad/internal/app"
	"github.com/abhisek/drillpad/internal/explain"
	"github.com/abhisek/drillpad/internal/llm"
	"github.com/abhisek/drillpad/internal/store"
	"github.com/spf13/cobra"
)

// deps is what both the terminal app and the web server run on.
type deps struct {
	store      *store.Store
	dispatcher *actions.Dispatcher
}

func (d *deps) Close() error {
	return d.store.Close()
}

// openDeps opens the store and builds the action dispatcher. A missing
// LLM credential is not an error: explanations are switched off.
func openDeps(ctx context.Context, cmd *cobra.Command) (*deps, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Explanations will be unavailable.")
		provider = nil
	}

	explainer := explain.NewService(provider, explain.DefaultConfig())
	return &deps{
		store:      st,
		dispatcher: actions.New(explainer, st.NotebookRepo()),
	}, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	exportDir, _ := cmd.Flags().GetString("export-dir")
	noSplash, _ := cmd.Flags().GetBool("no-splash")

	return app.Run(app.Options{
		Bank:        bankCache(cmd),
		Dispatcher:  d.dispatcher,
		History:     d.store.NotebookRepo(),
		ExportDir:   exportDir,
		SkipWelcome: noSplash,
	})
}
