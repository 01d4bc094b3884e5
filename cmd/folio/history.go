package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/storage"
)

func historyCmd() *cobra.Command {
	var limit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent bulk sells and imports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPreferences(cmd, func(store *storage.SQLiteStorage) error {
				runs, err := store.ListBatchRuns(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("failed to list batch runs: %w", err)
				}
				w := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(w, cli.FormatInfo("No batch runs recorded yet"))
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, r := range runs {
					failed := strconv.Itoa(r.Failed)
					if r.Failed > 0 {
						failed = cli.ErrorStyle.Render(failed)
					}
					rows = append(rows, []string{r.StartedAt.Local().Format("2006-01-02 15:04"), r.Kind,
						strconv.Itoa(r.Succeeded), failed, r.Duration.Round(10 * time.Millisecond).String(), shortID(r.ID)})
				}
				fmt.Fprintln(w, cli.RenderTable([]string{"started", "kind", "ok", "failed", "took", "id"}, rows))

				if verbose {
					for _, r := range runs {
						for _, e := range r.Errors {
							fmt.Fprintln(w, cli.FormatError(fmt.Sprintf("%s %s: %s", shortID(r.ID), r.Kind, e)))
						}
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", storage.DefaultHistoryLimit, "number of runs to show")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show per-item errors")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
