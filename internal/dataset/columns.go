package dataset

// Canonical column names. The loader renames every source header onto these
// so downstream joins never see source-specific naming.
const (
	ColCedenName     = "ceden_name"
	ColCASNumber     = "cas_number"
	ColBenchmarkName = "benchmark_name"
	ColSynonym       = "pubchem_synonym"
)
