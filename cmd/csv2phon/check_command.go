package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"csv2phon/internal/description"
	"csv2phon/internal/importer"
	"csv2phon/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "check DESCRIPTION",
		Short: "Check that an import description can run without importing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			desc, err := description.LoadFile(args[0])
			if err != nil {
				return err
			}

			imp := importer.New(nil, importer.OptionsFromConfig(cfg), nil)
			results := preflight.RunAll(cfg, desc, imp.ResolvePath)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fprintLines(out, renderSectionHeader("Check "+desc.Corpus, colorize))
			for _, r := range results {
				kind := statusOK
				switch {
				case !r.Passed:
					kind = statusError
				case r.Warning:
					kind = statusWarn
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if failed := preflight.Failed(results); failed > 0 {
				return fmt.Errorf("%d checks failed", failed)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
