package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/batch"
	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import broker contract notes or mutual-fund statements",
	}
	cmd.AddCommand(importNotesCmd())
	cmd.AddCommand(importMFCmd())
	return cmd
}

func importNotesCmd() *cobra.Command {
	var fixes []string
	var yes bool

	cmd := &cobra.Command{
		Use:   "notes FILE...",
		Short: "Import contract-note PDFs",
		Long: `Parse every contract note, show the merged trades for review, then
import them one (contract number, trade date) group at a time.

A file that fails to parse is reported and skipped. Use --fix to correct a
misread symbol by its row number in the preview, e.g. --fix 3=INFY.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corrections, err := parseCorrections(fixes)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			return withStoreSession(ctx, func(s *session) error {
				uploads := make([]batch.Upload, 0, len(args))
				for _, path := range args {
					uploads = append(uploads, batch.UploadFile(path))
				}

				previews, fileErrs := batch.ParseContractNotes(ctx, s.client, uploads, cli.NewProgressReporter(os.Stderr, "Parsing").Update)
				reportFileErrors(s.notify, fileErrs)
				if len(previews) == 0 {
					return common.NewUserError("No contract notes could be parsed", batch.ErrNoTrades)
				}

				merged := batch.MergePreviews(previews)
				if err := batch.ApplySymbolCorrections(&merged, corrections); err != nil {
					return err
				}
				printTradePreview(w, merged)

				if !yes {
					ok, err := cli.NewPrompter(cmd.InOrStdin(), w).Confirm(ctx, fmt.Sprintf("Import %d trades?", merged.Total))
					if err != nil {
						return err
					}
					if !ok {
						s.notify.Info("Import cancelled")
						return nil
					}
				}

				summary := s.shell.ImportContractNotes(ctx, merged, cli.NewProgressReporter(os.Stderr, "Importing").Update)
				printImportDetails(w, summary)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&fixes, "fix", nil, "correct a symbol as ROW=SYMBOL (repeatable)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "import without asking for confirmation")
	return cmd
}

func importMFCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "mf FILE...",
		Short: "Import mutual-fund statements",
		Long: `Parse every statement and flag rows that are already recorded, then
import the remaining rows one fund at a time.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			return withStoreSession(ctx, func(s *session) error {
				uploads := make([]batch.Upload, 0, len(args))
				for _, path := range args {
					uploads = append(uploads, batch.UploadFile(path))
				}

				preview, fileErrs := batch.ParseMFStatements(ctx, s.client, uploads, cli.NewProgressReporter(os.Stderr, "Parsing").Update)
				reportFileErrors(s.notify, fileErrs)
				if len(preview.Funds) == 0 {
					return common.NewUserError("No statements could be parsed", batch.ErrNoTrades)
				}

				existing, err := s.client.MFTransactions(ctx)
				if err != nil {
					s.notify.Warning("Could not load recorded transactions; duplicates will not be flagged")
				} else {
					batch.FlagDuplicates(&preview, existing)
				}

				total, dups := preview.Count()
				rows := make([][]string, 0, total)
				for _, fund := range preview.Funds {
					for _, t := range fund.Transactions {
						mark := ""
						if t.Duplicate {
							mark = "duplicate"
						}
						rows = append(rows, []string{fund.FundName, t.Date.String(), string(t.Type),
							strconv.FormatFloat(t.Units, 'f', 3, 64), cli.FormatMoney(t.Amount), mark})
					}
				}
				fmt.Fprintln(w, cli.RenderTable([]string{"fund", "date", "type", "units", "amount", ""}, rows))

				if total == dups {
					s.notify.Info("Every transaction is already recorded")
					return nil
				}
				if !yes {
					ok, err := cli.NewPrompter(cmd.InOrStdin(), w).Confirm(ctx, fmt.Sprintf("Import %d transactions (%d duplicates skipped)?", total-dups, dups))
					if err != nil {
						return err
					}
					if !ok {
						s.notify.Info("Import cancelled")
						return nil
					}
				}

				summary := s.shell.ImportMFStatements(ctx, preview, cli.NewProgressReporter(os.Stderr, "Importing").Update)
				for _, e := range summary.Errors {
					fmt.Fprintln(w, cli.FormatError(e))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "import without asking for confirmation")
	return cmd
}

// parseCorrections reads ROW=SYMBOL pairs; rows are numbered from 1 as shown in the preview.
func parseCorrections(fixes []string) (map[int]string, error) {
	corrections := make(map[int]string, len(fixes))
	for _, fix := range fixes {
		row, symbol, ok := strings.Cut(fix, "=")
		if !ok {
			return nil, common.Validationf("--fix %q: expected ROW=SYMBOL", fix)
		}
		n, err := strconv.Atoi(strings.TrimSpace(row))
		if err != nil || n < 1 {
			return nil, common.Validationf("--fix %q: row must be a positive number", fix)
		}
		corrections[n-1] = symbol
	}
	return corrections, nil
}

func reportFileErrors(notify *cli.Notifier, errs []batch.FileError) {
	for _, e := range errs {
		notify.Error(e.Error())
	}
}

func printTradePreview(w io.Writer, preview model.ContractNotePreview) {
	fmt.Fprintln(w, cli.FormatTitle(fmt.Sprintf("%d trades (%d buys, %d sells) from %s", preview.Total, preview.Buys, preview.Sells, preview.TradeDate)))
	rows := make([][]string, 0, len(preview.Trades))
	for i, t := range preview.Trades {
		rows = append(rows, []string{strconv.Itoa(i + 1), t.TradeDate, t.Symbol, string(t.Action),
			strconv.FormatFloat(t.Quantity, 'f', -1, 64), cli.FormatMoney(t.Price), t.SourceFile})
	}
	fmt.Fprintln(w, cli.RenderTable([]string{"#", "date", "symbol", "action", "quantity", "price", "file"}, rows))
}

func printImportDetails(w io.Writer, summary batch.ImportSummary) {
	rows := make([][]string, 0, len(summary.BuyDetails)+len(summary.SellDetails))
	for _, r := range summary.BuyDetails {
		rows = append(rows, []string{"Buy", r.TradeDate, r.Symbol, strconv.FormatFloat(r.Quantity, 'f', -1, 64), cli.FormatMoney(r.Price)})
	}
	for _, r := range summary.SellDetails {
		rows = append(rows, []string{"Sell", r.TradeDate, r.Symbol, strconv.FormatFloat(r.Quantity, 'f', -1, 64), cli.FormatMoney(r.Price)})
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, cli.RenderTable([]string{"action", "date", "symbol", "quantity", "price"}, rows))
	}
	for _, e := range summary.Errors {
		fmt.Fprintln(w, cli.FormatError(e))
	}
}
