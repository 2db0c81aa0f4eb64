package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/stack-installer/internal/install"
	"github.com/conn-castle/stack-installer/internal/messages"
)

func newCleanupCmd(opts *globalOptions) *cobra.Command {
	db := &dbFlags{}
	var yes bool
	cmd := &cobra.Command{
		Use:   messages.CleanupUse,
		Short: messages.CleanupShort,
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
			out := cmd.OutOrStdout()
			ok, err := confirm(yes, messages.CleanupPrompt)
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(out, messages.CleanupAborted)
				return nil
			}

			report, err := s.installer.DetectLeftovers(cmd.Context(), install.Cleanup, s.app, params)
			printRemoved(out, report)
			if err != nil {
				return fmt.Errorf(messages.CleanupErrorFmt, err)
			}
			if len(report.Removed) == 0 {
				_, _ = fmt.Fprintln(out, messages.CleanupNothing)
				return nil
			}
			_, _ = fmt.Fprintln(out, messages.CleanupDone)
			return nil
		},
	}
	addDBFlags(cmd, db)
	cmd.Flags().BoolVarP(&yes, flagYes, "y", false, messages.CleanupFlagYes)
	return cmd
}
