package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/stack-installer/internal/install"
	"github.com/conn-castle/stack-installer/internal/messages"
)

func newLeftoversCmd(opts *globalOptions) *cobra.Command {
	db := &dbFlags{}
	cmd := &cobra.Command{
		Use:   messages.LeftoversUse,
		Short: messages.LeftoversShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			params, err := dbParams(cmd, s.app, db, true)
			if err != nil {
				return err
			}
			report, err := s.installer.DetectLeftovers(cmd.Context(), install.ReportOnly, s.app, params)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, report.String())
			if err != nil {
				return err
			}
			if report.Clean() {
				_, _ = fmt.Fprintln(out, messages.LeftoversNone)
				return nil
			}
			return &SilentExitError{Code: 1}
		},
	}
	addDBFlags(cmd, db)
	return cmd
}
