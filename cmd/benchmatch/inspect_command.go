package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"benchmatch/internal/dataset"
	"benchmatch/internal/logging"
	"benchmatch/internal/report"
	"benchmatch/internal/table"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var previewRows int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load the configured source tables and summarize them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			tables, err := dataset.NewLoader(cfg, logging.NewNop()).Load(cmd.Context())
			if err != nil {
				return err
			}

			inputs := cfg.InputFiles()
			sources := []struct {
				name  string
				table *table.Table
			}{
				{"benchmarks", tables.Benchmarks},
				{"thresholdless", tables.Thresholdless},
				{"registry", tables.Registry},
				{"pollutant_synonyms", tables.PollutantSynonyms},
				{"benchmark_synonyms", tables.BenchmarkSynonyms},
			}

			rows := make([][]string, 0, len(sources))
			for _, source := range sources {
				rows = append(rows, []string{
					source.name,
					strconv.Itoa(source.table.Len()),
					strings.Join(source.table.Columns(), ", "),
					inputs[source.name],
				})
			}
			summary := table.MustNew([]string{"dataset", "rows", "columns", "file"}, rows)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Preview(summary, -1))

			if previewRows > 0 {
				for _, source := range sources {
					fmt.Fprintf(out, "\n%s (%d rows)\n%s\n",
						source.name, source.table.Len(), report.Preview(source.table, previewRows))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&previewRows, "preview", 0, "Rows of each source table to preview (0 disables)")
	return cmd
}
