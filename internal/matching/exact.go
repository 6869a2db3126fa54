package matching

import (
	"log/slog"

	"benchmatch/internal/config"
	"benchmatch/internal/dataset"
	"benchmatch/internal/logging"
	"benchmatch/internal/table"
	"benchmatch/internal/textutil"
)

// Matcher implements the two matching passes over the normalized tables.
type Matcher struct {
	sentinels config.Sentinels
	logger    *slog.Logger
}

func New(sentinels config.Sentinels, logger *slog.Logger) *Matcher {
	return &Matcher{sentinels: sentinels, logger: logging.NewComponentLogger(logger, "matcher")}
}

// CleanBenchmarks discards benchmark rows whose CAS number is the
// not-reported sentinel and normalizes the remaining CAS cells. Both matching
// passes consume the cleaned table.
func (m *Matcher) CleanBenchmarks(benchmarks *table.Table) (*table.Table, error) {
	kept := benchmarks.Filter(func(r table.Row) bool {
		return r.Get(dataset.ColCASNumber) != m.sentinels.BenchmarkMissingCAS
	})
	cleaned, err := normalizeCASColumn(kept)
	if err != nil {
		return nil, err
	}
	if dropped := benchmarks.Len() - cleaned.Len(); dropped > 0 {
		m.logger.Debug("discarded benchmarks without reported CAS", logging.Int("dropped", dropped))
	}
	return cleaned, nil
}

// MatchExact joins thresholdless pollutants to benchmarks on normalized CAS
// numbers. Every output row carries a non-sentinel CAS number that compared
// equal on both sides. Column order: ceden_name, benchmark_name, residual.
func (m *Matcher) MatchExact(thresholdless, registry, cleanBenchmarks *table.Table) (*table.Table, error) {
	withCAS, err := table.InnerJoin(thresholdless, registry, table.JoinSpec{
		LeftKey:  dataset.ColCedenName,
		RightKey: dataset.ColCedenName,
	})
	if err != nil {
		return nil, err
	}
	withCAS = withCAS.Filter(func(r table.Row) bool {
		return r.Get(dataset.ColCASNumber) != m.sentinels.RegistryMissingCAS
	})
	withCAS, err = normalizeCASColumn(withCAS)
	if err != nil {
		return nil, err
	}

	matched, err := table.InnerJoin(withCAS, cleanBenchmarks, table.JoinSpec{
		LeftKey:  dataset.ColCASNumber,
		RightKey: dataset.ColCASNumber,
	})
	if err != nil {
		return nil, err
	}
	result, err := matched.Reorder(dataset.ColCedenName, dataset.ColBenchmarkName)
	if err != nil {
		return nil, err
	}
	m.logger.Info("exact matching finished",
		logging.Int("thresholdless", thresholdless.Len()),
		logging.Int("with_cas", withCAS.Len()),
		logging.Int("matches", result.Len()))
	return result, nil
}

// normalizeCASColumn strips hyphen formatting from every cas_number cell so
// differently formatted sources join correctly.
func normalizeCASColumn(tbl *table.Table) (*table.Table, error) {
	columns := tbl.Columns()
	casIndex := -1
	for i, name := range columns {
		if name == dataset.ColCASNumber {
			casIndex = i
			break
		}
	}
	if casIndex < 0 {
		return tbl, nil
	}
	return tbl.Map(func(r table.Row) []string {
		cells := r.Cells()
		cells[casIndex] = textutil.NormalizeCAS(cells[casIndex])
		return cells
	})
}
