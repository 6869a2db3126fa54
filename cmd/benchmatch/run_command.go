package main

import (
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"benchmatch/internal/config"
	"benchmatch/internal/logging"
	"benchmatch/internal/pipeline"
	"benchmatch/internal/report"
	"benchmatch/internal/table"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var previewRows int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the matching pipeline and write result files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := newRunLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			outcome, err := pipeline.NewRunner(cfg, logger).Run(signalCtx)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), outcome, previewRows)
			return nil
		},
	}

	cmd.Flags().IntVar(&previewRows, "preview", 5, "Rows of each result table to preview (0 disables)")
	return cmd
}

// newRunLogger sends logs to stderr and, when a log directory is configured,
// to a per-run log file alongside it.
func newRunLogger(cfg *config.Config) (*slog.Logger, error) {
	outputs := []string{"stderr"}
	if strings.TrimSpace(cfg.Paths.LogDir) != "" {
		name := fmt.Sprintf("benchmatch-%s.log", time.Now().UTC().Format("20060102T150405Z"))
		outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, name))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}

func printOutcome(out io.Writer, outcome *pipeline.Outcome, previewRows int) {
	fmt.Fprintf(out, "Run %s finished in %s\n\n", outcome.RunID, outcome.Duration.Round(time.Millisecond))

	counts := table.MustNew(
		[]string{"dataset", "rows"},
		[][]string{
			{"benchmarks", strconv.Itoa(outcome.Counts.Benchmarks)},
			{"thresholdless pollutants", strconv.Itoa(outcome.Counts.Thresholdless)},
			{"registry entries", strconv.Itoa(outcome.Counts.Registry)},
			{"synonym bridge rows", strconv.Itoa(outcome.Counts.BridgeRows)},
			{"exact matches", strconv.Itoa(outcome.Counts.ExactMatches)},
			{"synonym candidates", strconv.Itoa(outcome.Counts.SynonymCandidates)},
		},
	)
	fmt.Fprintln(out, report.Preview(counts, -1))

	fmt.Fprintf(out, "\nExact matches:      %s\n", outcome.ExactMatchesPath)
	fmt.Fprintf(out, "Synonym candidates: %s\n", outcome.CandidatesPath)
	if outcome.ReportPath != "" {
		fmt.Fprintf(out, "Report:             %s\n", outcome.ReportPath)
	}

	if previewRows > 0 {
		fmt.Fprintf(out, "\nExact matches (%d rows)\n%s\n",
			outcome.ExactMatches.Len(), report.Preview(outcome.ExactMatches, previewRows))
		fmt.Fprintf(out, "\nSynonym candidates (%d rows)\n%s\n",
			outcome.SynonymCandidates.Len(), report.Preview(outcome.SynonymCandidates, previewRows))
	}
}
