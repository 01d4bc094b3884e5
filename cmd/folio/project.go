package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/finance"
	"github.com/Veraticus/folio/internal/model"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Preview deposit maturity",
		Long: `Estimate maturity values locally, without contacting the backend.

These are estimates: the backend's own figures are authoritative.`,
	}
	cmd.AddCommand(projectFDCmd())
	cmd.AddCommand(projectRDCmd())
	cmd.AddCommand(projectPPFCmd())
	return cmd
}

func projectFDCmd() *cobra.Command {
	var principal, rate, start string
	var tenure, payout int

	cmd := &cobra.Command{
		Use:   "fd",
		Short: "Preview a fixed deposit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			p, r := finance.ParseAmount(principal), finance.ParseAmount(rate)

			if payout != 0 && !finance.ValidPayoutInterval(payout) {
				return common.Validationf("--payout-months must divide 12, got %d", payout)
			}
			if payout == 0 {
				printProjection(w, "Cumulative FD", finance.CompoundMaturity(p, r, tenure, finance.DefaultPeriodsPerYear))
				return nil
			}

			printProjection(w, fmt.Sprintf("FD paying out every %d months", payout), finance.PeriodicPayout(p, r, tenure, payout))
			if start != "" {
				startDate, err := parseDateFlag("start", start)
				if err != nil {
					return err
				}
				elapsed := startDate.MonthsUntil(model.Today())
				printProjection(w, fmt.Sprintf("Paid out so far (%d months elapsed)", elapsed), finance.AccruedPayout(p, r, tenure, payout, elapsed))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "amount deposited")
	cmd.Flags().StringVar(&rate, "rate", "", "annual interest rate in percent")
	cmd.Flags().IntVar(&tenure, "tenure-months", 12, "tenure in months")
	cmd.Flags().IntVar(&payout, "payout-months", 0, "interest payout interval in months (0 for cumulative)")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD) to show payouts accrued so far")
	return cmd
}

func projectRDCmd() *cobra.Command {
	var monthly, rate string
	var tenure, compounding int

	cmd := &cobra.Command{
		Use:   "rd",
		Short: "Preview a recurring deposit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			m, r := finance.ParseAmount(monthly), finance.ParseAmount(rate)
			printProjection(w, fmt.Sprintf("RD compounding every %d months", compounding), finance.PeriodicAccrualMaturity(m, r, tenure, compounding))
			printProjection(w, "Bank quarterly approximation", finance.QuarterlyApproxMaturity(m, r, tenure))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthly, "monthly", "", "monthly installment")
	cmd.Flags().StringVar(&rate, "rate", "", "annual interest rate in percent")
	cmd.Flags().IntVar(&tenure, "tenure-months", 12, "tenure in months")
	cmd.Flags().IntVar(&compounding, "compounding-months", 3, "compounding interval in months")
	return cmd
}

func projectPPFCmd() *cobra.Command {
	var rate string
	var years int

	cmd := &cobra.Command{
		Use:   "ppf",
		Short: "Preview a PPF account at the annual maximum",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			printProjection(w, fmt.Sprintf("PPF over %d years", years), finance.AnnualMaxContributionProjection(finance.ParseAmount(rate), years))
			fmt.Fprintln(w, cli.SubtleStyle.Render(fmt.Sprintf(
				"Assumes %s deposited at the start of every year; recorded contributions are not used.",
				cli.FormatMoney(finance.PPFAnnualLimit))))
			return nil
		},
	}

	cmd.Flags().StringVar(&rate, "rate", "7.1", "annual interest rate in percent")
	cmd.Flags().IntVar(&years, "years", 15, "years to project")
	return cmd
}

func printProjection(w io.Writer, title string, p *finance.Projection) {
	if p == nil {
		fmt.Fprintln(w, cli.FormatWarning(title+": enter positive amounts, rate and tenure to see a preview"))
		return
	}

	body := fmt.Sprintf("Invested  %s\nInterest  %s\nMaturity  %s",
		cli.FormatMoney(p.Invested), cli.FormatMoney(p.Interest), cli.FormatMoney(p.Maturity))
	if p.PerPeriod > 0 {
		body += fmt.Sprintf("\nPer period %s × %s", cli.FormatMoney(p.PerPeriod), strconv.Itoa(p.Periods))
	}
	fmt.Fprintln(w, cli.RenderBox(title+" (estimate)", body))
}
