package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/stack-installer/internal/install"
	"github.com/conn-castle/stack-installer/internal/messages"
)

func newTokensCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.TokensUse,
		Short: messages.TokensShort,
	}
	cmd.AddCommand(newTokensDiffCmd(opts))
	return cmd
}

func newTokensDiffCmd(opts *globalOptions) *cobra.Command {
	var maxLines int
	cmd := &cobra.Command{
		Use:   messages.TokensDiffUse,
		Short: messages.TokensDiffShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			previews, err := s.installer.PreviewTokens(s.app, maxLines)
			if err != nil {
				return fmt.Errorf(messages.TokensPreviewFailFmt, err)
			}
			out := cmd.OutOrStdout()
			if len(previews) == 0 {
				_, _ = fmt.Fprintln(out, messages.TokensNoChanges)
				return nil
			}
			for _, p := range previews {
				_, _ = fmt.Fprintf(out, messages.TokensFileHeaderFmt, p.Path)
				_, _ = fmt.Fprint(out, p.UnifiedDiff)
				if len(p.Unresolved) > 0 {
					_, _ = fmt.Fprintf(out, messages.TokensUnresolvedFmt, p.Path, strings.Join(p.Unresolved, ", "))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxLines, "diff-lines", install.DefaultDiffMaxLines, messages.TokensFlagDiffLines)
	return cmd
}
