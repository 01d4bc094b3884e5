package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
)

func stockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Record stock buys, sells and dividends",
	}
	cmd.AddCommand(stockAddCmd())
	cmd.AddCommand(stockSellCmd())
	cmd.AddCommand(stockDividendCmd())
	return cmd
}

func stockAddCmd() *cobra.Command {
	var lot model.Lot
	var date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a stock purchase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if lot.BuyDate, err = parseDateFlag("date", date); err != nil {
				return err
			}
			lot.Symbol = strings.ToUpper(strings.TrimSpace(lot.Symbol))
			if err := invalid(lot.Validate()); err != nil {
				return err
			}
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "Add "+lot.Symbol, func(ctx context.Context) error {
					return s.client.AddStock(ctx, lot)
				})
			})
		},
	}

	cmd.Flags().StringVar(&lot.Symbol, "symbol", "", "ticker symbol")
	cmd.Flags().StringVar(&lot.Exchange, "exchange", "NSE", "exchange")
	cmd.Flags().StringVar(&lot.Name, "name", "", "company name")
	cmd.Flags().Float64Var(&lot.Quantity, "quantity", 0, "shares bought")
	cmd.Flags().Float64Var(&lot.BuyPrice, "price", 0, "price per share")
	cmd.Flags().StringVar(&date, "date", "", "buy date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func stockSellCmd() *cobra.Command {
	var order model.SellOrder
	var date string

	cmd := &cobra.Command{
		Use:   "sell HOLDING_ID",
		Short: "Sell quantity of one lot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if order.SellDate, err = parseDateFlag("date", date); err != nil {
				return err
			}
			order.HoldingID = args[0]
			if err := invalid(order.Validate()); err != nil {
				return err
			}
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "Sell "+order.HoldingID, func(ctx context.Context) error {
					return s.client.SellStock(ctx, order)
				})
			})
		},
	}

	cmd.Flags().Float64Var(&order.Quantity, "quantity", 0, "shares to sell")
	cmd.Flags().Float64Var(&order.SellPrice, "price", 0, "sell price per share")
	cmd.Flags().StringVar(&date, "date", "", "sell date (YYYY-MM-DD, default today)")
	return cmd
}

func stockDividendCmd() *cobra.Command {
	var div model.Dividend
	var date string

	cmd := &cobra.Command{
		Use:   "dividend SYMBOL",
		Short: "Record a cash dividend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if div.Date, err = parseDateFlag("date", date); err != nil {
				return err
			}
			div.Symbol = strings.ToUpper(strings.TrimSpace(args[0]))
			if div.Amount <= 0 {
				return common.Validationf("dividend amount must be positive")
			}
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "Dividend for "+div.Symbol, func(ctx context.Context) error {
					return s.client.AddDividend(ctx, div)
				})
			})
		},
	}

	cmd.Flags().Float64Var(&div.Amount, "amount", 0, "amount received")
	cmd.Flags().StringVar(&date, "date", "", "payment date (YYYY-MM-DD, default today)")
	return cmd
}

func mfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mf",
		Short: "Record mutual-fund purchases and redemptions",
	}
	cmd.AddCommand(mfAddCmd())
	cmd.AddCommand(mfRedeemCmd())
	return cmd
}

func mfAddCmd() *cobra.Command {
	var h model.MFHolding
	var date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a mutual-fund purchase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if h.BuyDate, err = parseDateFlag("date", date); err != nil {
				return err
			}
			switch {
			case strings.TrimSpace(h.FundCode) == "":
				return common.Validationf("fund code is required")
			case h.Units <= 0:
				return common.Validationf("units must be positive")
			case h.NAV <= 0:
				return common.Validationf("NAV must be positive")
			}
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "Add "+h.FundCode, func(ctx context.Context) error {
					return s.client.AddMF(ctx, h)
				})
			})
		},
	}

	cmd.Flags().StringVar(&h.FundCode, "fund-code", "", "scheme code")
	cmd.Flags().StringVar(&h.FundName, "fund-name", "", "scheme name")
	cmd.Flags().StringVar(&h.Folio, "folio", "", "folio number")
	cmd.Flags().Float64Var(&h.Units, "units", 0, "units bought")
	cmd.Flags().Float64Var(&h.NAV, "nav", 0, "purchase NAV")
	cmd.Flags().StringVar(&date, "date", "", "purchase date (YYYY-MM-DD, default today)")
	return cmd
}

func mfRedeemCmd() *cobra.Command {
	var r model.MFRedemption
	var date string

	cmd := &cobra.Command{
		Use:   "redeem HOLDING_ID",
		Short: "Redeem units of a holding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if r.Date, err = parseDateFlag("date", date); err != nil {
				return err
			}
			r.HoldingID = args[0]
			if r.Units <= 0 || r.NAV <= 0 {
				return common.Validationf("units and NAV must be positive")
			}
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "Redeem "+r.HoldingID, func(ctx context.Context) error {
					return s.client.RedeemMF(ctx, r)
				})
			})
		},
	}

	cmd.Flags().Float64Var(&r.Units, "units", 0, "units to redeem")
	cmd.Flags().Float64Var(&r.NAV, "nav", 0, "redemption NAV")
	cmd.Flags().StringVar(&date, "date", "", "redemption date (YYYY-MM-DD, default today)")
	return cmd
}
