package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/stack-installer/internal/doctor"
	"github.com/conn-castle/stack-installer/internal/install"
	"github.com/conn-castle/stack-installer/internal/logging"
	"github.com/conn-castle/stack-installer/internal/messages"
)

func newDoctorCmd(opts *globalOptions) *cobra.Command {
	db := &dbFlags{}
	cmd := &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			loc, err := opts.locations()
			if err != nil {
				return err
			}
			log, closeLog, err := logging.Init(logging.Options{Level: opts.logLevel, File: loc.LogPath})
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, loc.Root)

			var allResults []doctor.Result

			// 1. Check Config
			configResults, cfg := doctor.CheckConfig(loc.ConfigPath)
			allResults = append(allResults, configResults...)

			// 2. Check Answers
			answersResults, app := doctor.CheckAnswers(loc.AnswersPath, cfg)
			allResults = append(allResults, answersResults...)

			// 3. Check Platform
			platformResults, target := doctor.CheckPlatform()
			allResults = append(allResults, platformResults...)

			if cfg != nil {
				// 4. Check Package
				allResults = append(allResults, doctor.CheckPackage(loc.Root, cfg, target)...)
			}

			// 5. Check Leftovers
			if cfg != nil && app != nil {
				installer, err := install.New(install.Options{
					Config: cfg,
					System: newSystem(),
					DB:     newDatabaseClient(),
					Root:   loc.Root,
					Logger: log,
				})
				if err != nil {
					return err
				}
				params, err := dbParams(cmd, app, db, false)
				if err != nil {
					return err
				}
				allResults = append(allResults, doctor.CheckLeftovers(cmd.Context(), installer, app, params)...)
			} else {
				allResults = append(allResults, doctor.Result{
					Status:    doctor.StatusWarn,
					CheckName: messages.DoctorCheckNameLeftovers,
					Message:   messages.DoctorLeftoversSkipped,
				})
			}

			for _, r := range allResults {
				printResult(out, r)
			}

			if doctor.HasFailure(allResults) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return fmt.Errorf(messages.DoctorFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
	addDBFlags(cmd, db)
	return cmd
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	lines := strings.Split(recommendation, "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
			continue
		}
		if line == "" {
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
	}
}
