package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"csv2phon/internal/config"
	"csv2phon/internal/description"
	"csv2phon/internal/importer"
	"csv2phon/internal/logging"
	"csv2phon/internal/project"
)

type importFlags struct {
	base      string
	project   string
	encoding  string
	delimiter string
	quote     string
	logFile   string
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import DESCRIPTION",
		Short: "Import the CSV files listed in an import description",
		Long: `Import reads a TOML or YAML import description, converts every selected
CSV file into a session of the description's corpus, and saves the sessions to
the project store. A failing file is reported and the remaining files still run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}

			desc, err := description.LoadFile(args[0])
			if err != nil {
				return err
			}

			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			if flags.logFile != "" {
				path, err := config.ExpandPath(flags.logFile)
				if err != nil {
					return err
				}
				handler, closer, err := logging.OpenFileHandler(path, cfg.Logging.Format, cfg.Logging.Level)
				if err != nil {
					return err
				}
				defer closer.Close()
				logger = logging.TeeLogger(logger, handler)
			}

			var summary importer.Summary
			err = ctx.withProject(func(store *project.Store) error {
				imp := importer.New(store, importer.OptionsFromConfig(cfg), logger)
				summary = imp.Run(cmd.Context(), desc)
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writeImportSummary(out, desc, summary, shouldColorize(out))

			if summary.Err != nil {
				return summary.Err
			}
			if failed := summary.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d files failed to import", failed, len(summary.Results))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Also append import logs to this file")

	return cmd
}

// register adds the path and dialect overrides shared by import and check.
func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.base, "base", "", "Directory relative CSV locations resolve against")
	cmd.Flags().StringVar(&f.project, "project", "", "Project store directory")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "CSV character encoding")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV field delimiter")
	cmd.Flags().StringVar(&f.quote, "quote", "", "CSV text quote character")
}

// apply overrides cfg with the flags that were set and revalidates it.
func (f importFlags) apply(cfg *config.Config) error {
	if f.base != "" {
		path, err := config.ExpandPath(f.base)
		if err != nil {
			return err
		}
		cfg.Paths.BaseDir = path
	}
	if f.project != "" {
		path, err := config.ExpandPath(f.project)
		if err != nil {
			return err
		}
		cfg.Paths.ProjectDir = path
	}
	if f.encoding != "" {
		cfg.CSV.Encoding = f.encoding
	}
	if f.delimiter != "" {
		cfg.CSV.Delimiter = unescapeDialect(f.delimiter)
	}
	if f.quote != "" {
		cfg.CSV.Quote = unescapeDialect(f.quote)
	}
	return cfg.Validate()
}

// unescapeDialect lets shells pass a tab as the two characters \t.
func unescapeDialect(value string) string {
	if value == `\t` {
		return "\t"
	}
	return value
}

func writeImportSummary(out io.Writer, desc *description.Description, summary importer.Summary, colorize bool) {
	fprintLines(out, renderSectionHeader("Import "+desc.Corpus, colorize))

	rows := make([][]string, 0, len(summary.Results))
	for _, res := range summary.Results {
		status := "saved"
		switch {
		case res.Err != nil:
			status = "failed"
		case !res.Saved:
			status = "locked"
		}
		rows = append(rows, []string{
			res.Entry.Session,
			res.Entry.Location,
			fmt.Sprintf("%d", res.Records),
			fmt.Sprintf("%d", res.Aligned),
			fmt.Sprintf("%d", res.Warnings),
			res.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(tableSpec{
			headers: []string{"Session", "File", "Records", "Aligned", "Warnings", "Time", "Status"},
			aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
			wrap:    []int{1},
		}, rows))
	}

	for _, res := range summary.Results {
		kind, msg := fileStatus(res)
		fmt.Fprintln(out, renderStatusLine(res.Entry.Session, kind, msg, colorize))
	}

	totals := fmt.Sprintf("%d saved, %d failed, %d skipped", summary.Saved(), summary.Failed(), summary.Skipped)
	kind := statusOK
	if summary.Failed() > 0 || summary.Err != nil {
		kind = statusError
	} else if summary.Saved() < len(summary.Results) {
		kind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Total", kind, totals, colorize))
	if summary.Err != nil {
		fmt.Fprintln(out, renderStatusLine("Stopped", statusWarn, strings.TrimSpace(summary.Err.Error()), colorize))
	}
}
