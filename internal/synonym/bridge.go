package synonym

import (
	"log/slog"

	"benchmatch/internal/dataset"
	"benchmatch/internal/logging"
	"benchmatch/internal/table"
	"benchmatch/internal/textutil"
)

// Joiner builds the pollutant↔benchmark synonym bridge.
type Joiner struct {
	logger *slog.Logger
}

func NewJoiner(logger *slog.Logger) *Joiner {
	return &Joiner{logger: logging.NewComponentLogger(logger, "synonym-joiner")}
}

// Build augments both edge sets with reflexive edges, then inner-joins them
// on folded synonym text. The result carries one row per
// (ceden_name, pubchem_synonym, benchmark_name) triple; the synonym cell
// keeps the pollutant side's raw spelling.
//
// A many-to-many fan-out beyond both inputs is expected here (shared synonyms
// bridge multiple pairs) and is surfaced as a warning, never an error.
func (j *Joiner) Build(pollutantEdges, benchmarkEdges *table.Table) (*table.Table, error) {
	pollutantSide, err := WithSelfEdges(pollutantEdges, dataset.ColCedenName)
	if err != nil {
		return nil, err
	}
	benchmarkSide, err := WithSelfEdges(benchmarkEdges, dataset.ColBenchmarkName)
	if err != nil {
		return nil, err
	}

	joined, err := table.InnerJoin(pollutantSide, benchmarkSide, table.JoinSpec{
		LeftKey:  dataset.ColSynonym,
		RightKey: dataset.ColSynonym,
		Fold:     textutil.FoldKey,
	})
	if err != nil {
		return nil, err
	}
	bridge, err := joined.Select(dataset.ColCedenName, dataset.ColSynonym, dataset.ColBenchmarkName)
	if err != nil {
		return nil, err
	}
	bridge = bridge.Distinct()

	if bridge.Len() > pollutantSide.Len() && bridge.Len() > benchmarkSide.Len() {
		j.logger.Warn("synonym join fanned out beyond both edge sets",
			logging.Alert("join_ambiguity"),
			logging.Int("pollutant_edges", pollutantSide.Len()),
			logging.Int("benchmark_edges", benchmarkSide.Len()),
			logging.Int("bridge_rows", bridge.Len()))
	}
	j.logger.Debug("synonym bridge built",
		logging.Int("pollutant_edges", pollutantSide.Len()),
		logging.Int("benchmark_edges", benchmarkSide.Len()),
		logging.Int("bridge_rows", bridge.Len()))
	return bridge, nil
}
