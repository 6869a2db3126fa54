package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"benchmatch/internal/config"
	"benchmatch/internal/logging"
	"benchmatch/internal/services"
	"benchmatch/internal/table"
	"benchmatch/internal/textutil"
)

// Tables holds the five normalized source tables.
type Tables struct {
	// Benchmarks carries benchmark_name, cas_number, and every residual
	// column from the source export.
	Benchmarks *table.Table
	// Thresholdless is the deduplicated pollutant name list (ceden_name).
	Thresholdless *table.Table
	// Registry maps ceden_name to cas_number.
	Registry *table.Table
	// PollutantSynonyms carries (ceden_name, pubchem_synonym) edges.
	PollutantSynonyms *table.Table
	// BenchmarkSynonyms carries (benchmark_name, pubchem_synonym) edges.
	BenchmarkSynonyms *table.Table
}

// Loader reads the configured CSV sources into normalized tables.
type Loader struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewLoader(cfg *config.Config, logger *slog.Logger) *Loader {
	return &Loader{cfg: cfg, logger: logging.NewComponentLogger(logger, "loader")}
}

// Load reads all five sources. Any missing file, unparseable CSV, or absent
// required column aborts with a services.ErrLoad error before any matching
// begins.
func (l *Loader) Load(ctx context.Context) (*Tables, error) {
	benchmarks, err := l.loadBenchmarks(ctx)
	if err != nil {
		return nil, err
	}
	thresholdless, err := l.loadThresholdless(ctx)
	if err != nil {
		return nil, err
	}
	registry, err := l.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	pollutantSynonyms, err := l.loadSynonyms(ctx, "pollutant_synonyms",
		l.cfg.Inputs.PollutantSynonyms, l.cfg.Columns.PollutantSynonymName, l.cfg.Columns.PollutantSynonymText, ColCedenName)
	if err != nil {
		return nil, err
	}
	benchmarkSynonyms, err := l.loadSynonyms(ctx, "benchmark_synonyms",
		l.cfg.Inputs.BenchmarkSynonyms, l.cfg.Columns.BenchmarkSynonymName, l.cfg.Columns.BenchmarkSynonymText, ColBenchmarkName)
	if err != nil {
		return nil, err
	}
	return &Tables{
		Benchmarks:        benchmarks,
		Thresholdless:     thresholdless,
		Registry:          registry,
		PollutantSynonyms: pollutantSynonyms,
		BenchmarkSynonyms: benchmarkSynonyms,
	}, nil
}

func (l *Loader) loadBenchmarks(ctx context.Context) (*table.Table, error) {
	tbl, err := l.readCSV(ctx, "benchmarks", l.cfg.Inputs.Benchmarks)
	if err != nil {
		return nil, err
	}
	renamed, err := renameRequired(tbl, map[string]string{
		l.cfg.Columns.BenchmarkName: ColBenchmarkName,
		l.cfg.Columns.BenchmarkCAS:  ColCASNumber,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "normalize benchmarks", l.cfg.Inputs.Benchmarks, err)
	}
	return renamed, nil
}

func (l *Loader) loadThresholdless(ctx context.Context) (*table.Table, error) {
	tbl, err := l.readCSV(ctx, "thresholdless", l.cfg.Inputs.Thresholdless)
	if err != nil {
		return nil, err
	}
	renamed, err := renameRequired(tbl, map[string]string{
		l.cfg.Columns.ThresholdlessName: ColCedenName,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "normalize thresholdless list", l.cfg.Inputs.Thresholdless, err)
	}
	selected, err := renamed.Select(ColCedenName)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "project thresholdless list", "", err)
	}
	// The source list is known to carry duplicate entries; collapse them
	// before matching so each pollutant is considered once.
	deduped, err := selected.DistinctBy(ColCedenName)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "dedupe thresholdless list", "", err)
	}
	if removed := selected.Len() - deduped.Len(); removed > 0 {
		l.logger.Info("collapsed duplicate thresholdless entries", logging.Int("removed", removed))
	}
	return deduped, nil
}

func (l *Loader) loadRegistry(ctx context.Context) (*table.Table, error) {
	tbl, err := l.readCSV(ctx, "registry", l.cfg.Inputs.Registry)
	if err != nil {
		return nil, err
	}
	renamed, err := renameRequired(tbl, map[string]string{
		l.cfg.Columns.RegistryName: ColCedenName,
		l.cfg.Columns.RegistryCAS:  ColCASNumber,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "normalize registry", l.cfg.Inputs.Registry, err)
	}
	selected, err := renamed.Select(ColCedenName, ColCASNumber)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "project registry", "", err)
	}
	return selected, nil
}

func (l *Loader) loadSynonyms(ctx context.Context, name, path, ownerColumn, synonymColumn, canonicalOwner string) (*table.Table, error) {
	tbl, err := l.readCSV(ctx, name, path)
	if err != nil {
		return nil, err
	}
	renamed, err := renameRequired(tbl, map[string]string{
		ownerColumn:   canonicalOwner,
		synonymColumn: ColSynonym,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "normalize "+name, path, err)
	}
	selected, err := renamed.Select(canonicalOwner, ColSynonym)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "project "+name, "", err)
	}
	// Empty synonym cells carry no matching signal and would join every
	// empty cell on the other side to every one on this side.
	return selected.Filter(func(r table.Row) bool {
		return r.Get(ColSynonym) != ""
	}), nil
}

// readCSV parses one source file into a table, cleaning every cell. All
// fields stay strings; CAS numbers would lose leading zeros as integers.
func (l *Loader) readCSV(ctx context.Context, name, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = services.WithDataset(ctx, name)
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "open "+name, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "read "+name+" header", path, err)
	}
	for i, column := range header {
		header[i] = textutil.CleanCell(column)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrLoad, "loader", "parse "+name, path, err)
		}
		for i, cell := range record {
			record[i] = textutil.CleanCell(cell)
		}
		rows = append(rows, record)
	}

	tbl, err := table.New(header, rows)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "loader", "build "+name+" table", path, err)
	}
	logging.WithContext(ctx, l.logger).Debug("dataset loaded",
		logging.Int("rows", tbl.Len()),
		logging.Int("columns", len(tbl.Columns())))
	return tbl, nil
}

// renameRequired renames source headers to canonical names, failing if any
// required source column is absent.
func renameRequired(tbl *table.Table, mapping map[string]string) (*table.Table, error) {
	for source := range mapping {
		if !tbl.HasColumn(source) {
			return nil, fmt.Errorf("required column %q not found (have %v)", source, tbl.Columns())
		}
	}
	return tbl.Rename(mapping)
}
