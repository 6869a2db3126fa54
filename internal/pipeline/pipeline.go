package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"benchmatch/internal/config"
	"benchmatch/internal/dataset"
	"benchmatch/internal/logging"
	"benchmatch/internal/matching"
	"benchmatch/internal/report"
	"benchmatch/internal/services"
	"benchmatch/internal/synonym"
	"benchmatch/internal/table"
)

// Counts summarizes the table sizes a run observed and produced.
type Counts struct {
	Benchmarks        int
	Thresholdless     int
	Registry          int
	PollutantSynonyms int
	BenchmarkSynonyms int
	BridgeRows        int
	ExactMatches      int
	SynonymCandidates int
}

// Outcome describes a completed run.
type Outcome struct {
	RunID             string
	StartedAt         time.Time
	Duration          time.Duration
	Counts            Counts
	ExactMatches      *table.Table
	SynonymCandidates *table.Table
	ExactMatchesPath  string
	CandidatesPath    string
	ReportPath        string
}

// Runner executes the full matching pipeline: load, bridge, exact match,
// synonym match, commit.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, logger: logging.NewComponentLogger(logger, "pipeline")}
}

// Run executes one batch pass. The data directory is locked for the duration
// so two runs cannot interleave the paired output files; both result files
// are committed together or not at all.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	started := time.Now()

	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "ensure directories", "", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.DataDir, "benchmatch.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "acquire lock", "", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConflict, "pipeline", "acquire lock",
			"another benchmatch run is already writing results", nil)
	}
	defer lock.Unlock()

	logging.WithContext(ctx, r.logger).Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("output_dir", r.cfg.Paths.OutputDir))

	outcome := &Outcome{RunID: runID, StartedAt: started}

	var tables *dataset.Tables
	err = r.stage(ctx, "load", func(ctx context.Context) error {
		var err error
		tables, err = dataset.NewLoader(r.cfg, r.logger).Load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	outcome.Counts.Benchmarks = tables.Benchmarks.Len()
	outcome.Counts.Thresholdless = tables.Thresholdless.Len()
	outcome.Counts.Registry = tables.Registry.Len()
	outcome.Counts.PollutantSynonyms = tables.PollutantSynonyms.Len()
	outcome.Counts.BenchmarkSynonyms = tables.BenchmarkSynonyms.Len()

	var bridge *table.Table
	err = r.stage(ctx, "synonym-bridge", func(ctx context.Context) error {
		var err error
		bridge, err = synonym.NewJoiner(r.logger).Build(tables.PollutantSynonyms, tables.BenchmarkSynonyms)
		return err
	})
	if err != nil {
		return nil, err
	}
	outcome.Counts.BridgeRows = bridge.Len()

	matcher := matching.New(r.cfg.Sentinels, r.logger)

	var cleanBenchmarks *table.Table
	err = r.stage(ctx, "exact-match", func(ctx context.Context) error {
		var err error
		cleanBenchmarks, err = matcher.CleanBenchmarks(tables.Benchmarks)
		if err != nil {
			return err
		}
		outcome.ExactMatches, err = matcher.MatchExact(tables.Thresholdless, tables.Registry, cleanBenchmarks)
		return err
	})
	if err != nil {
		return nil, err
	}
	outcome.Counts.ExactMatches = outcome.ExactMatches.Len()

	err = r.stage(ctx, "synonym-match", func(ctx context.Context) error {
		var err error
		outcome.SynonymCandidates, err = matcher.MatchCandidates(
			tables.Thresholdless, bridge, cleanBenchmarks, outcome.ExactMatches)
		return err
	})
	if err != nil {
		return nil, err
	}
	outcome.Counts.SynonymCandidates = outcome.SynonymCandidates.Len()

	err = r.stage(ctx, "commit", func(ctx context.Context) error {
		return dataset.CommitCSV(r.cfg.Paths.OutputDir, []dataset.OutputFile{
			{Name: r.cfg.Outputs.ExactMatches, Table: outcome.ExactMatches},
			{Name: r.cfg.Outputs.SynonymCandidates, Table: outcome.SynonymCandidates},
		})
	})
	if err != nil {
		return nil, err
	}
	outcome.ExactMatchesPath = filepath.Join(r.cfg.Paths.OutputDir, r.cfg.Outputs.ExactMatches)
	outcome.CandidatesPath = filepath.Join(r.cfg.Paths.OutputDir, r.cfg.Outputs.SynonymCandidates)

	if r.cfg.Report.Enabled {
		err = r.stage(ctx, "report", func(ctx context.Context) error {
			path := filepath.Join(r.cfg.Paths.OutputDir, r.cfg.Report.FileName)
			info := report.RunInfo{RunID: runID, StartedAt: started, Duration: time.Since(started)}
			sections := []report.Section{
				{
					Title: "Exact matches (CAS)",
					Note:  matching.ConfidenceExact.Describe(),
					Table: outcome.ExactMatches,
				},
				{
					Title: "Synonym candidates",
					Note:  matching.ConfidencePotential.Describe(),
					Table: outcome.SynonymCandidates,
				},
			}
			if err := report.WriteHTML(path, info, sections); err != nil {
				return err
			}
			outcome.ReportPath = path
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	outcome.Duration = time.Since(started)
	logging.WithContext(ctx, r.logger).Info("run finished",
		logging.String(logging.FieldEventType, "run_finish"),
		logging.Int("exact_matches", outcome.Counts.ExactMatches),
		logging.Int("synonym_candidates", outcome.Counts.SynonymCandidates),
		logging.Duration("duration", outcome.Duration))
	return outcome, nil
}

func (r *Runner) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stageCtx := services.WithStage(ctx, name)
	stageLogger := logging.WithContext(stageCtx, r.logger)
	stageLogger.Debug("stage started", logging.String(logging.FieldEventType, "stage_start"))
	start := time.Now()
	if err := fn(stageCtx); err != nil {
		stageLogger.Error("stage failed", logging.Error(err), logging.Duration("duration", time.Since(start)))
		return err
	}
	stageLogger.Debug("stage finished",
		logging.String(logging.FieldEventType, "stage_finish"),
		logging.Duration("duration", time.Since(start)))
	return nil
}
