package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/common"
)

func zerodhaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zerodha",
		Short: "Manage the broker connection used for live prices",
	}
	cmd.AddCommand(zerodhaTokenCmd())
	cmd.AddCommand(zerodhaStatusCmd())
	return cmd
}

func zerodhaTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [ACCESS_TOKEN]",
		Short: "Store a new access token and validate it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				var err error
				token, err = cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Ask(ctx, "Access token", "")
				if err != nil {
					return err
				}
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return common.Validationf("access token is required")
			}

			return withSession(ctx, func(s *session) error {
				if err := s.mutate(ctx, "Zerodha token", func(ctx context.Context) error {
					return s.client.SetZerodhaToken(ctx, token)
				}); err != nil {
					return err
				}
				status, err := s.client.ValidateZerodhaToken(ctx)
				if err != nil {
					return common.NewUserError("Token saved but could not be validated", err)
				}
				printZerodhaStatus(cmd, status.Connected, status.UserName, status.ExpiresAt)
				return nil
			})
		},
	}
}

func zerodhaStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the broker session is live",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				status, err := s.client.ZerodhaStatus(cmd.Context())
				if err != nil {
					return common.NewUserError("Could not read broker status", err)
				}
				printZerodhaStatus(cmd, status.Connected, status.UserName, status.ExpiresAt)
				return nil
			})
		},
	}
}

func printZerodhaStatus(cmd *cobra.Command, connected bool, user, expires string) {
	w := cmd.OutOrStdout()
	if !connected {
		fmt.Fprintln(w, cli.FormatWarning("Not connected; run `folio zerodha token` with a fresh access token"))
		return
	}
	msg := "Connected"
	if user != "" {
		msg += " as " + user
	}
	if expires != "" {
		msg += ", expires " + expires
	}
	fmt.Fprintln(w, cli.FormatSuccess(msg))
}
