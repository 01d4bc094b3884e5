package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/storage"
)

// tableColumns lists the tables whose columns can be toggled.
var tableColumns = map[string][]string{
	tableStocks: stockColumns,
	tableMF:     mfColumns,
}

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage local display preferences",
	}
	columns := &cobra.Command{
		Use:   "columns",
		Short: "Show or hide dashboard table columns",
	}
	columns.AddCommand(prefsColumnsGetCmd())
	columns.AddCommand(prefsColumnsSetCmd())
	columns.AddCommand(prefsColumnsResetCmd())
	cmd.AddCommand(columns)
	return cmd
}

func lookupTable(table string) ([]string, error) {
	columns, ok := tableColumns[table]
	if !ok {
		return nil, common.Validationf("unknown table %q (use %s or %s)", table, tableStocks, tableMF)
	}
	return columns, nil
}

// withPreferences opens only local storage; preferences never touch the backend.
func withPreferences(cmd *cobra.Command, fn func(*storage.SQLiteStorage) error) error {
	s, err := newSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.store)
}

func prefsColumnsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get TABLE",
		Short: "Show which columns of a table are visible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := lookupTable(args[0])
			if err != nil {
				return err
			}
			return withPreferences(cmd, func(store *storage.SQLiteStorage) error {
				visible, err := storage.NewColumnVisibility(store, args[0]).Visible(cmd.Context(), columns)
				if err != nil {
					return fmt.Errorf("failed to read column preferences: %w", err)
				}
				rows := make([][]string, 0, len(columns))
				for _, c := range columns {
					rows = append(rows, []string{c, strconv.FormatBool(visible[c])})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"column", "visible"}, rows))
				return nil
			})
		},
	}
}

func prefsColumnsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set TABLE COLUMN on|off",
		Short: "Show or hide one column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, column := args[0], args[1]
			columns, err := lookupTable(table)
			if err != nil {
				return err
			}
			known := false
			for _, c := range columns {
				known = known || c == column
			}
			if !known {
				return common.Validationf("table %s has no column %q", table, column)
			}
			var visible bool
			switch args[2] {
			case "on", "true", "show":
				visible = true
			case "off", "false", "hide":
			default:
				return common.Validationf("visibility must be on or off, got %q", args[2])
			}

			return withPreferences(cmd, func(store *storage.SQLiteStorage) error {
				if err := storage.NewColumnVisibility(store, table).SetVisible(cmd.Context(), column, visible); err != nil {
					return fmt.Errorf("failed to save column preference: %w", err)
				}
				cli.NewNotifier(cmd.ErrOrStderr()).Success(fmt.Sprintf("%s.%s is now %s", table, column, args[2]))
				return nil
			})
		},
	}
}

func prefsColumnsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset TABLE",
		Short: "Show every column of a table again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := lookupTable(args[0]); err != nil {
				return err
			}
			return withPreferences(cmd, func(store *storage.SQLiteStorage) error {
				if err := storage.NewColumnVisibility(store, args[0]).Reset(cmd.Context()); err != nil {
					return fmt.Errorf("failed to reset column preferences: %w", err)
				}
				cli.NewNotifier(cmd.ErrOrStderr()).Success("Column preferences reset for " + args[0])
				return nil
			})
		},
	}
}
