package config

const (
	defaultDataDir   = "~/.local/share/benchmatch"
	defaultOutputDir = "~/.local/share/benchmatch/results"

	defaultBenchmarksFile        = "benchmarks.csv"
	defaultThresholdlessFile     = "thresholdless_pollutants.csv"
	defaultRegistryFile          = "pollutant_registry.csv"
	defaultPollutantSynonymsFile = "pollutant_synonyms.csv"
	defaultBenchmarkSynonymsFile = "benchmark_synonyms.csv"

	defaultBenchmarkNameColumn        = "Chemical"
	defaultBenchmarkCASColumn         = "CAS No."
	defaultRegistryNameColumn         = "CEDEN_Name"
	defaultRegistryCASColumn          = "CAS_Number"
	defaultThresholdlessNameColumn    = "CEDEN_Name"
	defaultPollutantSynonymNameColumn = "CEDEN_Name"
	defaultPollutantSynonymTextColumn = "Synonym"
	defaultBenchmarkSynonymNameColumn = "Chemical"
	defaultBenchmarkSynonymTextColumn = "Synonym"

	defaultRegistryMissingCAS  = "0"
	defaultBenchmarkMissingCAS = "NR"

	defaultExactMatchesFile      = "exact_matches.csv"
	defaultSynonymCandidatesFile = "synonym_candidates.csv"
	defaultReportFile            = "run_report.html"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			OutputDir: defaultOutputDir,
		},
		Inputs: Inputs{
			Benchmarks:        defaultBenchmarksFile,
			Thresholdless:     defaultThresholdlessFile,
			Registry:          defaultRegistryFile,
			PollutantSynonyms: defaultPollutantSynonymsFile,
			BenchmarkSynonyms: defaultBenchmarkSynonymsFile,
		},
		Columns: Columns{
			BenchmarkName:        defaultBenchmarkNameColumn,
			BenchmarkCAS:         defaultBenchmarkCASColumn,
			RegistryName:         defaultRegistryNameColumn,
			RegistryCAS:          defaultRegistryCASColumn,
			ThresholdlessName:    defaultThresholdlessNameColumn,
			PollutantSynonymName: defaultPollutantSynonymNameColumn,
			PollutantSynonymText: defaultPollutantSynonymTextColumn,
			BenchmarkSynonymName: defaultBenchmarkSynonymNameColumn,
			BenchmarkSynonymText: defaultBenchmarkSynonymTextColumn,
		},
		Sentinels: Sentinels{
			RegistryMissingCAS:  defaultRegistryMissingCAS,
			BenchmarkMissingCAS: defaultBenchmarkMissingCAS,
		},
		Outputs: Outputs{
			ExactMatches:      defaultExactMatchesFile,
			SynonymCandidates: defaultSynonymCandidatesFile,
		},
		Report: Report{
			Enabled:  true,
			FileName: defaultReportFile,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
