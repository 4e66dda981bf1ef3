package main

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"csv2phon/internal/logging"
	"csv2phon/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var match string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print recent lines of the csv2phon log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.FileName)
			result, err := logs.Tail(path, logs.TailOptions{Limit: lines, Match: match})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fprintLines(out, result.Lines)
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, result.Offset, match, 250*time.Millisecond, func(batch []string) {
				fprintLines(out, batch)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of trailing lines to print")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&match, "match", "", "Only print lines containing this text (a session name or event type)")
	return cmd
}
