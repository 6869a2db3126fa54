package matching

import (
	"benchmatch/internal/dataset"
	"benchmatch/internal/logging"
	"benchmatch/internal/table"
	"benchmatch/internal/textutil"
)

// MatchCandidates matches the pollutants and benchmarks left over after the
// exact pass through the synonym bridge. Pollutants and benchmarks named in
// the exact output are excluded independently, so no pair can appear in both
// outputs. Multiple synonym paths between the same pair collapse to one row.
func (m *Matcher) MatchCandidates(thresholdless, bridge, cleanBenchmarks, exact *table.Table) (*table.Table, error) {
	matchedBenchmarks, err := exact.ValueSet(dataset.ColBenchmarkName)
	if err != nil {
		return nil, err
	}
	matchedPollutants, err := exact.ValueSet(dataset.ColCedenName)
	if err != nil {
		return nil, err
	}

	// Benchmark side: unmatched benchmarks augmented with their bridge
	// synonyms. The bridge's ceden_name is dropped here; the pollutant side
	// contributes its own.
	benchmarkRemainder := cleanBenchmarks.Filter(func(r table.Row) bool {
		_, matched := matchedBenchmarks[r.Get(dataset.ColBenchmarkName)]
		return !matched
	})
	benchmarkBridge, err := bridge.Drop(dataset.ColCedenName)
	if err != nil {
		return nil, err
	}
	benchmarkSide, err := table.InnerJoin(benchmarkRemainder, benchmarkBridge, table.JoinSpec{
		LeftKey:  dataset.ColBenchmarkName,
		RightKey: dataset.ColBenchmarkName,
	})
	if err != nil {
		return nil, err
	}

	// Pollutant side: unmatched thresholdless pollutants augmented with
	// their bridge synonyms, with the bridge's benchmark_name dropped to
	// avoid colliding with the benchmark side.
	pollutantRemainder := thresholdless.Filter(func(r table.Row) bool {
		_, matched := matchedPollutants[r.Get(dataset.ColCedenName)]
		return !matched
	})
	pollutantBridge, err := bridge.Drop(dataset.ColBenchmarkName)
	if err != nil {
		return nil, err
	}
	pollutantSide, err := table.InnerJoin(pollutantRemainder, pollutantBridge, table.JoinSpec{
		LeftKey:  dataset.ColCedenName,
		RightKey: dataset.ColCedenName,
	})
	if err != nil {
		return nil, err
	}

	paired, err := table.InnerJoin(pollutantSide, benchmarkSide, table.JoinSpec{
		LeftKey:  dataset.ColSynonym,
		RightKey: dataset.ColSynonym,
		Fold:     textutil.FoldKey,
	})
	if err != nil {
		return nil, err
	}

	withoutSynonym, err := paired.Drop(dataset.ColSynonym)
	if err != nil {
		return nil, err
	}
	result, err := withoutSynonym.Distinct().Reorder(dataset.ColCedenName, dataset.ColBenchmarkName)
	if err != nil {
		return nil, err
	}
	m.logger.Info("synonym matching finished",
		logging.Int("unmatched_pollutants", pollutantRemainder.Len()),
		logging.Int("unmatched_benchmarks", benchmarkRemainder.Len()),
		logging.Int("candidates", result.Len()))
	return result, nil
}
