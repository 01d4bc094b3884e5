package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
)

func sipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sip",
		Short: "Manage systematic investment plans",
	}
	cmd.AddCommand(sipListCmd())
	cmd.AddCommand(sipSetCmd())
	cmd.AddCommand(sipDeleteCmd())
	cmd.AddCommand(sipExecuteCmd())
	return cmd
}

func loadSIPBook(ctx context.Context, s *session) (*model.SIPBook, error) {
	configs, err := s.client.SIPConfigs(ctx)
	if err != nil {
		return nil, common.NewUserError("Could not load SIP configurations", err)
	}
	return model.NewSIPBook(configs), nil
}

func sipListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured SIPs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				book, err := loadSIPBook(cmd.Context(), s)
				if err != nil {
					return err
				}
				if book.Len() == 0 {
					s.notify.Info("No SIPs configured")
					return nil
				}
				rows := make([][]string, 0, book.Len())
				for _, c := range book.List() {
					end := "-"
					if c.EndDate != nil {
						end = c.EndDate.String()
					}
					rows = append(rows, []string{c.FundCode, c.FundName, cli.FormatMoney(c.Amount), string(c.Frequency),
						strconv.Itoa(c.Day), end, strconv.FormatBool(c.Enabled)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"fund", "name", "amount", "frequency", "day", "ends", "enabled"}, rows))
				return nil
			})
		},
	}
}

func sipSetCmd() *cobra.Command {
	var cfg model.SIPConfig
	var frequency, end string
	var disabled bool

	cmd := &cobra.Command{
		Use:   "set FUND_CODE",
		Short: "Create or replace the SIP of a fund",
		Long: `Create or replace the SIP of a fund. A fund has at most one SIP; setting
it again replaces the previous configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := model.ParseFrequency(frequency)
			if err != nil {
				return common.Validationf("%v", err)
			}
			cfg.FundCode = args[0]
			cfg.Frequency = freq
			cfg.Enabled = !disabled
			if end != "" {
				endDate, err := parseDateFlag("end", end)
				if err != nil {
					return err
				}
				cfg.EndDate = &endDate
			}
			if err := invalid(cfg.Validate()); err != nil {
				return err
			}

			return withSession(cmd.Context(), func(s *session) error {
				book, err := loadSIPBook(cmd.Context(), s)
				if err != nil {
					return err
				}
				if existing, ok := book.Get(cfg.FundCode); ok && cfg.FundName == "" {
					cfg.FundName = existing.FundName
				}
				if err := invalid(book.Upsert(cfg)); err != nil {
					return err
				}
				return s.mutate(cmd.Context(), "SIP for "+cfg.FundCode, func(ctx context.Context) error {
					return s.client.SaveSIP(ctx, cfg)
				})
			})
		},
	}

	cmd.Flags().StringVar(&cfg.FundName, "fund-name", "", "scheme name")
	cmd.Flags().Float64Var(&cfg.Amount, "amount", 0, "amount per installment")
	cmd.Flags().StringVar(&frequency, "frequency", string(model.FrequencyMonthly), "weekly, monthly or quarterly")
	cmd.Flags().IntVar(&cfg.Day, "day", 1, "day of month (1-28), or weekday (1-7) for weekly SIPs")
	cmd.Flags().StringVar(&end, "end", "", "last installment date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "save the SIP paused")
	return cmd
}

func sipDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FUND_CODE",
		Short: "Remove the SIP of a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fundCode := args[0]
			return withSession(cmd.Context(), func(s *session) error {
				book, err := loadSIPBook(cmd.Context(), s)
				if err != nil {
					return err
				}
				if !book.Delete(fundCode) {
					return common.NewUserError(fmt.Sprintf("No SIP configured for %s", fundCode), common.ErrNotFound)
				}
				return s.mutate(cmd.Context(), "Delete SIP for "+fundCode, func(ctx context.Context) error {
					return s.client.DeleteSIP(ctx, fundCode)
				})
			})
		},
	}
}

func sipExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute FUND_CODE",
		Short: "Record one SIP installment now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fundCode := args[0]
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "SIP installment for "+fundCode, func(ctx context.Context) error {
					return s.client.ExecuteSIP(ctx, fundCode)
				})
			})
		},
	}
}
