package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/config"
	"github.com/Veraticus/folio/internal/export"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export holdings and deposits to an Excel workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				snap, err := s.shell.Reload(cmd.Context())
				if err != nil {
					return err
				}
				path := config.ExpandPath(output)
				if err := export.Save(path, snap); err != nil {
					return err
				}
				s.notify.Success(fmt.Sprintf("Wrote %s", path))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "folio.xlsx", "workbook path")
	return cmd
}
