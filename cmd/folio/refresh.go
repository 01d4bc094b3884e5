package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/refresh"
)

func refreshCmd() *cobra.Command {
	var ticker bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Pull live prices now",
		Long: `Ask the backend to pull live prices, then reload the dashboard.

With --set-interval, change how often the backend refreshes on its own.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withSession(ctx, func(s *session) error {
				if cmd.Flags().Changed("set-interval") {
					if err := s.mutate(ctx, "Refresh interval", func(ctx context.Context) error {
						return s.client.SetRefreshInterval(ctx, interval)
					}); err != nil {
						return err
					}
				}
				if ticker {
					if err := s.client.RefreshTicker(ctx); err != nil {
						slog.Debug("Ticker refresh failed", "error", err)
					}
				}
				return s.mutate(ctx, "Price refresh", s.client.RefreshPrices)
			})
		},
	}

	cmd.Flags().BoolVar(&ticker, "ticker", false, "also refresh the market ticker")
	cmd.Flags().DurationVar(&interval, "set-interval", 0, "backend auto-refresh interval (e.g. 5m)")
	return cmd
}

func watchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh prices on an interval",
		Long: `Refresh prices and reload the portfolio summary on an interval until
interrupted. Press Enter to refresh immediately.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Stopping watch...")
			ctx := handler.HandleInterrupts(cmd.Context())
			w := cmd.OutOrStdout()

			return withSession(ctx, func(s *session) error {
				if !cmd.Flags().Changed("interval") {
					interval = s.cfg.RefreshInterval
				}

				sched, err := refresh.New(interval, func(ctx context.Context) {
					s.shell.RefreshPrices(ctx)
					printWatchLine(ctx, w, s)
				})
				if err != nil {
					return err
				}
				if err := sched.Start(ctx); err != nil {
					return err
				}
				defer sched.Stop()

				s.notify.Info(fmt.Sprintf("Refreshing every %s, press Enter to refresh now", sched.Interval()))
				sched.Trigger(ctx)
				go triggerOnEnter(ctx, cmd.InOrStdin(), sched)

				<-ctx.Done()
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval (default from refresh.interval)")
	return cmd
}

// triggerOnEnter runs a refresh for every line read from r.
func triggerOnEnter(ctx context.Context, r io.Reader, sched *refresh.Scheduler) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		sched.Trigger(ctx)
	}
}

func printWatchLine(ctx context.Context, w io.Writer, s *session) {
	snap := s.shell.Snapshot()
	if snap == nil || snap.Summary == nil {
		return
	}
	sum := snap.Summary
	line := fmt.Sprintf("%s  value %s  today %s",
		snap.LoadedAt.Format("15:04:05"),
		cli.FormatMoney(sum.CurrentValue),
		cli.StyleGain(sum.DayChange, cli.FormatSignedMoney(sum.DayChange)+" "+cli.FormatPercent(sum.DayChangePct)))

	ticker, err := s.client.MarketTicker(ctx)
	if err != nil {
		slog.Debug("Ticker poll failed", "error", err)
	} else {
		parts := make([]string, 0, len(ticker))
		for _, t := range ticker {
			parts = append(parts, cli.StyleGain(t.Change, fmt.Sprintf("%s %.2f (%s)", t.Symbol, t.Price, cli.FormatPercent(t.ChangePct))))
		}
		if len(parts) > 0 {
			line += "  │  " + strings.Join(parts, "  ")
		}
	}
	fmt.Fprintln(w, line)
}
