package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/drillpad/internal/notebook"
	"github.com/abhisek/drillpad/internal/store"
	"github.com/spf13/cobra"
)

var notebookCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Inspect and restore recorded notebook exports",
}

var notebookHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded notebook exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		snaps, err := s.NotebookRepo().List(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query exports: %w", err)
		}
		if len(snaps) == 0 {
			fmt.Println("No notebook exports recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %9s  %-8s  %s\n", "ID", "Timestamp", "Questions", "Session", "File")
		fmt.Println(strings.Repeat("─", 80))
		for _, sn := range snaps {
			fmt.Printf("%-5d  %-19s  %9d  %-8s  %s\n",
				sn.ID,
				sn.Timestamp.Local().Format("2006-01-02 15:04:05"),
				sn.ItemCount,
				truncate(sn.SessionID, 8),
				sn.Filename,
			)
		}
		return nil
	},
}

var notebookRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Write a recorded export back to a file",
	Long: `Write the exact bytes of a recorded notebook export to a file, ready to
be imported again. Without --output the export's original file name is used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		out, _ := cmd.Flags().GetString("output")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		snap, err := s.NotebookRepo().Get(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get export: %w", err)
		}
		if snap == nil {
			return fmt.Errorf("export %d not found", id)
		}

		// Refuse to write something the importer would reject.
		qs, err := notebook.Decode(snap.Data)
		if err != nil {
			return fmt.Errorf("export %d is damaged: %w", id, err)
		}

		if out == "" {
			out = snap.Filename
		}
		if out == "-" {
			_, err = os.Stdout.Write(snap.Data)
			return err
		}
		if err := os.WriteFile(out, snap.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Wrote %d questions to %s\n", len(qs), out)
		return nil
	},
}

var notebookPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 1 {
			return fmt.Errorf("--keep must be at least 1 (use reset to delete everything)")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.NotebookRepo().Prune(context.Background(), keep); err != nil {
			return err
		}
		fmt.Printf("Kept the %d most recent exports.\n", keep)
		return nil
	},
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	notebookHistoryCmd.Flags().IntP("limit", "n", 20, "Number of exports to show")
	notebookRestoreCmd.Flags().StringP("output", "o", "", "File to write (\"-\" for stdout)")
	notebookPruneCmd.Flags().Int("keep", 10, "Number of exports to keep")

	notebookCmd.AddCommand(notebookHistoryCmd)
	notebookCmd.AddCommand(notebookRestoreCmd)
	notebookCmd.AddCommand(notebookPruneCmd)
}
