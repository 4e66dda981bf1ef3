package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"csv2phon/internal/csvio"
	"csv2phon/internal/description"
	"csv2phon/internal/importer"
)

func newDescribeCommand(ctx *commandContext) *cobra.Command {
	var corpus string
	var output string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "describe CSV...",
		Short: "Scaffold an import description from CSV headers",
		Long: `Describe reads the header row of the first CSV file and writes an import
description mapping every column, with one file entry per argument. Columns
named like a reserved tier map onto it; all others become user tiers.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(corpus) == "" {
				return errors.New("--corpus is required")
			}

			opts := importer.OptionsFromConfig(cfg)
			header, err := readHeader(args[0], opts.CSV)
			if err != nil {
				return err
			}
			desc := description.Scaffold(corpus, header, args)
			if err := desc.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "" {
				data, err := description.Marshal(desc, description.FormatTOML)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			if !overwrite {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("description already exists at %s (use --overwrite to replace it)", output)
				}
			}
			if err := description.WriteFile(desc, output); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote description for %d columns and %d files to %s\n", len(desc.Columns), len(desc.Files), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpus, "corpus", "", "Corpus name for the description")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this .toml or .yaml file instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing description")
	return cmd
}

func readHeader(path string, opts csvio.Options) ([]string, error) {
	reader, err := csvio.Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	if err != nil {
		return nil, err
	}
	return header, nil
}
