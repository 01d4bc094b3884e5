package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/folio/internal/batch"
	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
	"github.com/Veraticus/folio/internal/tui"
)

// sellPlanFile is the YAML form of a bulk sell:
//
//	date: 2024-06-03
//	lots: [h1, h2]
//	symbols: [TCS]
//	prices:
//	  INFY: 1550
type sellPlanFile struct {
	Date    model.Date         `yaml:"date"`
	Prices  map[string]float64 `yaml:"prices"`
	Lots    []string           `yaml:"lots"`
	Symbols []string           `yaml:"symbols"`
}

func readSellPlanFile(r io.Reader) (*sellPlanFile, error) {
	var plan sellPlanFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		return nil, common.Validationf("invalid sell plan: %v", err)
	}
	return &plan, nil
}

func sellCmd() *cobra.Command {
	var lotIDs, symbols, prices []string
	var date, planPath string
	var interactive, yes bool

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell several lots at once",
		Long: `Sell held lots in bulk, one price per symbol.

Select lots with --lot or every lot of a symbol with --symbol, or load a
YAML plan with --plan. Prices default to the last live price; override them
with --price SYMBOL=PRICE or edit them with --interactive. Every lot is sold
in full, one request at a time, and a failed lot does not stop the rest.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			overrides, err := parsePrices(prices)
			if err != nil {
				return err
			}
			sellDate, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}

			if planPath != "" {
				f, err := os.Open(planPath)
				if err != nil {
					return fmt.Errorf("failed to open sell plan: %w", err)
				}
				file, err := readSellPlanFile(f)
				_ = f.Close()
				if err != nil {
					return err
				}
				lotIDs = append(lotIDs, file.Lots...)
				symbols = append(symbols, file.Symbols...)
				for sym, price := range file.Prices {
					sym = strings.ToUpper(strings.TrimSpace(sym))
					if _, set := overrides[sym]; !set {
						overrides[sym] = price
					}
				}
				if date == "" && !file.Date.IsZero() {
					sellDate = file.Date
				}
			}

			return withStoreSession(ctx, func(s *session) error {
				stocks, err := s.client.StockSummary(ctx)
				if err != nil {
					return common.NewUserError("Could not load stock holdings", err)
				}

				lots, err := selectLots(stocks.HeldLots(), lotIDs, symbols)
				if err != nil {
					return err
				}
				plan, err := batch.PlanBulkSell(lots, stocks.LivePrices())
				if err != nil {
					return err
				}
				for sym, price := range overrides {
					if err := plan.SetPrice(sym, price); err != nil {
						return common.Validationf("--price %s: symbol is not part of this sale", sym)
					}
				}

				if interactive {
					orders, ok, err := tui.RunSellEditor(ctx, plan, sellDate)
					if err != nil {
						return err
					}
					if !ok {
						s.notify.Info("Sale cancelled")
						return nil
					}
					slog.Debug("Sell prices confirmed", "orders", len(orders))
				} else {
					printSellPlan(w, plan)
					if err := plan.Validate(); err != nil {
						return err
					}
					if !yes {
						ok, err := cli.NewPrompter(cmd.InOrStdin(), w).Confirm(ctx, fmt.Sprintf("Sell %d lots on %s?", len(plan.Lots()), sellDate))
						if err != nil {
							return err
						}
						if !ok {
							s.notify.Info("Sale cancelled")
							return nil
						}
					}
				}

				result, err := s.shell.BulkSell(ctx, plan, sellDate, cli.NewProgressReporter(os.Stderr, "Selling").Update)
				if err != nil {
					return err
				}
				for _, f := range result.Failed {
					fmt.Fprintln(w, cli.FormatError(fmt.Sprintf("%s (%s): %v", f.Item.Symbol, f.Item.HoldingID, f.Err)))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&lotIDs, "lot", nil, "holding id to sell (repeatable)")
	cmd.Flags().StringArrayVar(&symbols, "symbol", nil, "sell every held lot of symbol (repeatable)")
	cmd.Flags().StringArrayVar(&prices, "price", nil, "sell price as SYMBOL=PRICE (repeatable)")
	cmd.Flags().StringVar(&date, "date", "", "sell date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&planPath, "plan", "", "YAML sell plan")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "edit prices in an interactive form")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "sell without asking for confirmation")
	return cmd
}

// selectLots picks held lots by id and by symbol, keeping holding order and
// dropping repeats. An unknown id is an error.
func selectLots(held []model.Lot, ids, symbols []string) ([]model.Lot, error) {
	if len(ids) == 0 && len(symbols) == 0 {
		return nil, common.Validationf("select lots with --lot, --symbol or --plan")
	}

	wantID := make(map[string]bool, len(ids))
	for _, id := range ids {
		wantID[id] = true
	}
	wantSymbol := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		wantSymbol[strings.ToUpper(strings.TrimSpace(sym))] = true
	}

	var selected []model.Lot
	found := make(map[string]bool, len(ids))
	for _, l := range held {
		if wantID[l.ID] || wantSymbol[strings.ToUpper(l.Symbol)] {
			selected = append(selected, l)
			found[l.ID] = true
		}
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, common.Validationf("no held lot with id %s", strings.Join(missing, ", "))
	}
	if len(selected) == 0 {
		return nil, common.Validationf("no held lots for %s", strings.Join(symbols, ", "))
	}
	return selected, nil
}

// parsePrices reads SYMBOL=PRICE pairs.
func parsePrices(pairs []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		sym, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, common.Validationf("--price %q: expected SYMBOL=PRICE", pair)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || !batch.ValidPrice(price) {
			return nil, common.Validationf("--price %q: price must be a positive number", pair)
		}
		prices[strings.ToUpper(strings.TrimSpace(sym))] = price
	}
	return prices, nil
}

func printSellPlan(w io.Writer, plan *batch.SellPlan) {
	rows := make([][]string, 0, len(plan.Groups()))
	total := 0.0
	for _, g := range plan.Groups() {
		price, proceeds := "missing", "-"
		if g.Price > 0 {
			price = cli.FormatMoney(g.Price)
			proceeds = cli.FormatMoney(g.Proceeds())
			total += g.Proceeds()
		}
		rows = append(rows, []string{g.Symbol, strconv.Itoa(len(g.Lots)), strconv.FormatFloat(g.Quantity(), 'f', -1, 64), price, proceeds})
	}
	fmt.Fprintln(w, cli.RenderTable([]string{"symbol", "lots", "quantity", "price", "proceeds"}, rows))
	fmt.Fprintln(w, cli.BoldStyle.Render("Total "+cli.FormatMoney(total)))
}
