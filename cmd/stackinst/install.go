package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/stack-installer/internal/appconfig"
	"github.com/conn-castle/stack-installer/internal/install"
	"github.com/conn-castle/stack-installer/internal/messages"
)

type installFlags struct {
	db               dbFlags
	yes              bool
	skipLeftovers    bool
	cleanupOnFailure bool
}

func newInstallCmd(opts *globalOptions) *cobra.Command {
	flags := &installFlags{}
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, opts, flags)
		},
	}
	addDBFlags(cmd, &flags.db)
	cmd.Flags().BoolVarP(&flags.yes, flagYes, "y", false, messages.InstallFlagYes)
	cmd.Flags().BoolVar(&flags.skipLeftovers, "skip-leftover-check", false, messages.InstallFlagSkipLeftovers)
	cmd.Flags().BoolVar(&flags.cleanupOnFailure, "cleanup-on-failure", false, messages.InstallFlagCleanupOnFailure)
	return cmd
}

func runInstall(cmd *cobra.Command, opts *globalOptions, flags *installFlags) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	params, err := dbParams(cmd, s.app, &flags.db, true)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, messages.InstallStartingFmt, s.app.Get(appconfig.KeyBaseDir))
	if !flags.skipLeftovers {
		report, err := s.installer.DetectLeftovers(ctx, install.ReportOnly, s.app, params)
		if !report.Clean() {
			_, _ = fmt.Fprintln(out, messages.InstallLeftoversHeader)
			_, _ = fmt.Fprint(out, report.String())
		}
		if err != nil {
			return err
		}
		if !report.Clean() {
			return errors.New(messages.InstallLeftoversError)
		}
	}

	installErr := s.installer.Install(ctx, s.app, params)
	if installErr == nil {
		return nil
	}
	s.log.Errorf(messages.InstallFailedFmt, installErr)

	remove := false
	if flags.cleanupOnFailure {
		remove, err = confirm(flags.yes, messages.InstallCleanupPrompt)
		if err != nil {
			return err
		}
	}
	if !remove {
		_, _ = fmt.Fprintln(out, messages.InstallCleanupSkipped)
		return &SilentExitError{Code: 1}
	}

	report, err := s.installer.DetectLeftovers(ctx, install.Cleanup, s.app, params)
	printRemoved(out, report)
	if err != nil {
		s.log.Errorf(messages.InstallCleanupFailedFmt, err)
	}
	return &SilentExitError{Code: 1}
}

// printRemoved lists what a cleanup run removed.
func printRemoved(out io.Writer, report install.Report) {
	for _, f := range report.Removed {
		_, _ = fmt.Fprintf(out, messages.CleanupLineFmt, f.Kind, f.Subject)
	}
}
