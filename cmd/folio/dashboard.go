package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/dashboard"
	"github.com/Veraticus/folio/internal/storage"
)

// Tables whose columns can be hidden with `folio prefs columns`.
const (
	tableStocks = "stocks"
	tableMF     = "mutual_funds"
)

var (
	stockColumns = []string{"id", "symbol", "bought", "quantity", "buy_price", "live_price", "invested", "value", "gain"}
	mfColumns    = []string{"id", "fund", "bought", "units", "nav", "current_nav", "invested", "value", "gain"}
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show every portfolio section",
		Long: `Load all dashboards from the backend at once and print them.

Sections that fail to load are reported and skipped; the rest are shown.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStoreSession(cmd.Context(), func(s *session) error {
				snap, err := s.shell.Reload(cmd.Context())
				if err != nil {
					return err
				}
				return renderDashboard(cmd.Context(), cmd.OutOrStdout(), snap, s.store)
			})
		},
	}
}

func renderDashboard(ctx context.Context, w io.Writer, snap *dashboard.Snapshot, store *storage.SQLiteStorage) error {
	if snap.Summary != nil {
		sum := snap.Summary
		body := fmt.Sprintf("Invested  %s\nValue     %s\nGain      %s (%s)\nToday     %s (%s)\nRealized  %s\nDividends %s",
			cli.FormatMoney(sum.TotalInvested),
			cli.FormatMoney(sum.CurrentValue),
			cli.StyleGain(sum.TotalGain, cli.FormatSignedMoney(sum.TotalGain)),
			cli.FormatPercent(cli.GainPercent(sum.TotalInvested, sum.CurrentValue)),
			cli.StyleGain(sum.DayChange, cli.FormatSignedMoney(sum.DayChange)),
			cli.FormatPercent(sum.DayChangePct),
			cli.FormatMoney(sum.RealizedGain),
			cli.FormatMoney(sum.DividendIncome),
		)
		fmt.Fprintln(w, cli.RenderBox("Portfolio", body))
	}

	if lots := snap.HeldLots(); len(lots) > 0 {
		rows := make([]map[string]string, 0, len(lots))
		for _, l := range lots {
			gain := l.CurrentValue() - l.Invested()
			rows = append(rows, map[string]string{
				"id":         l.ID,
				"symbol":     l.Symbol,
				"bought":     l.BuyDate.String(),
				"quantity":   strconv.FormatFloat(l.Quantity, 'f', -1, 64),
				"buy_price":  cli.FormatMoney(l.BuyPrice),
				"live_price": cli.FormatMoney(l.LivePrice),
				"invested":   cli.FormatMoney(l.Invested()),
				"value":      cli.FormatMoney(l.CurrentValue()),
				"gain":       cli.StyleGain(gain, cli.FormatSignedMoney(gain)),
			})
		}
		if err := renderSection(ctx, w, store, "Stocks", tableStocks, stockColumns, rows); err != nil {
			return err
		}
	}

	if snap.MF != nil && len(snap.MF.Holdings) > 0 {
		rows := make([]map[string]string, 0, len(snap.MF.Holdings))
		for _, h := range snap.MF.Holdings {
			invested := h.Units * h.NAV
			value := invested
			if h.CurrentNAV > 0 {
				value = h.Units * h.CurrentNAV
			}
			rows = append(rows, map[string]string{
				"id":          h.ID,
				"fund":        h.FundName,
				"bought":      h.BuyDate.String(),
				"units":       strconv.FormatFloat(h.Units, 'f', 3, 64),
				"nav":         strconv.FormatFloat(h.NAV, 'f', 4, 64),
				"current_nav": strconv.FormatFloat(h.CurrentNAV, 'f', 4, 64),
				"invested":    cli.FormatMoney(invested),
				"value":       cli.FormatMoney(value),
				"gain":        cli.StyleGain(value-invested, cli.FormatSignedMoney(value-invested)),
			})
		}
		if err := renderSection(ctx, w, store, "Mutual Funds", tableMF, mfColumns, rows); err != nil {
			return err
		}
	}

	renderDeposits(w, snap)

	if snap.Partial() {
		for _, section := range snap.Failed() {
			fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("%s unavailable: %v", section, snap.Errors[section])))
		}
	}
	return nil
}

// renderSection prints a table, dropping columns the user has hidden.
func renderSection(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, title, table string, columns []string, rows []map[string]string) error {
	shown := columns
	if store != nil {
		visible, err := storage.NewColumnVisibility(store, table).Visible(ctx, columns)
		if err != nil {
			return fmt.Errorf("failed to read %s column preferences: %w", table, err)
		}
		shown = make([]string, 0, len(columns))
		for _, c := range columns {
			if visible[c] {
				shown = append(shown, c)
			}
		}
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, len(shown))
		for i, c := range shown {
			line[i] = row[c]
		}
		cells = append(cells, line)
	}

	fmt.Fprintln(w, cli.FormatTitle(title))
	fmt.Fprintln(w, cli.RenderTable(shown, cells))
	fmt.Fprintln(w)
	return nil
}

func renderDeposits(w io.Writer, snap *dashboard.Snapshot) {
	var rows [][]string
	if snap.FD != nil {
		for _, d := range snap.FD.Deposits {
			rows = append(rows, []string{"FD", d.ID, d.Bank, string(d.Status), d.StartDate.String(), d.MaturityDate().String(), cli.FormatMoney(d.Principal)})
		}
	}
	if snap.RD != nil {
		for _, d := range snap.RD.Deposits {
			rows = append(rows, []string{"RD", d.ID, d.Bank, string(d.Status), d.StartDate.String(), d.StartDate.AddMonths(d.TenureMonths).String(), cli.FormatMoney(d.Deposited())})
		}
	}
	if snap.PPF != nil {
		for _, a := range snap.PPF.Accounts {
			rows = append(rows, []string{"PPF", a.ID, a.Holder, string(a.Status), a.StartDate.String(), a.StartDate.AddMonths(a.TenureYears * 12).String(), cli.FormatMoney(a.Contributed())})
		}
	}
	if snap.Insurance != nil {
		for _, p := range snap.Insurance.Policies {
			rows = append(rows, []string{"Insurance", p.ID, p.Provider + " " + p.PolicyName, string(p.Status), p.StartDate.String(), p.EndDate.String(), cli.FormatMoney(p.Premium)})
		}
	}
	if len(rows) == 0 {
		return
	}

	fmt.Fprintln(w, cli.FormatTitle("Deposits & Policies"))
	fmt.Fprintln(w, cli.RenderTable([]string{"type", "id", "name", "status", "start", "maturity", "amount"}, rows))
	fmt.Fprintln(w)
}
