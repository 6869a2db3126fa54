package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeInputs(); err != nil {
		return err
	}
	c.normalizeColumns()
	c.normalizeSentinels()
	c.normalizeOutputs()
	c.normalizeReport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	// The env var applies only when the config did not set a data dir
	// itself. Load seeds from Default(), so "still the unexpanded default"
	// means unconfigured.
	if trimmed := strings.TrimSpace(c.Paths.DataDir); trimmed == "" || trimmed == defaultDataDir {
		if value, ok := os.LookupEnv("BENCHMATCH_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
			c.Paths.DataDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = filepath.Join(c.Paths.DataDir, "results")
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

// normalizeInputs resolves relative input paths against the data directory so
// a config can name bare files next to each other.
func (c *Config) normalizeInputs() error {
	resolve := func(field, value string) (string, error) {
		value = strings.TrimSpace(value)
		if value == "" {
			return "", nil
		}
		if !filepath.IsAbs(value) && !strings.HasPrefix(value, "~") {
			return filepath.Join(c.Paths.DataDir, value), nil
		}
		expanded, err := expandPath(value)
		if err != nil {
			return "", fmt.Errorf("inputs.%s: %w", field, err)
		}
		return expanded, nil
	}

	var err error
	if c.Inputs.Benchmarks, err = resolve("benchmarks", c.Inputs.Benchmarks); err != nil {
		return err
	}
	if c.Inputs.Thresholdless, err = resolve("thresholdless", c.Inputs.Thresholdless); err != nil {
		return err
	}
	if c.Inputs.Registry, err = resolve("registry", c.Inputs.Registry); err != nil {
		return err
	}
	if c.Inputs.PollutantSynonyms, err = resolve("pollutant_synonyms", c.Inputs.PollutantSynonyms); err != nil {
		return err
	}
	if c.Inputs.BenchmarkSynonyms, err = resolve("benchmark_synonyms", c.Inputs.BenchmarkSynonyms); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeColumns() {
	trimOr := func(value, fallback string) string {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
		return fallback
	}
	c.Columns.BenchmarkName = trimOr(c.Columns.BenchmarkName, defaultBenchmarkNameColumn)
	c.Columns.BenchmarkCAS = trimOr(c.Columns.BenchmarkCAS, defaultBenchmarkCASColumn)
	c.Columns.RegistryName = trimOr(c.Columns.RegistryName, defaultRegistryNameColumn)
	c.Columns.RegistryCAS = trimOr(c.Columns.RegistryCAS, defaultRegistryCASColumn)
	c.Columns.ThresholdlessName = trimOr(c.Columns.ThresholdlessName, defaultThresholdlessNameColumn)
	c.Columns.PollutantSynonymName = trimOr(c.Columns.PollutantSynonymName, defaultPollutantSynonymNameColumn)
	c.Columns.PollutantSynonymText = trimOr(c.Columns.PollutantSynonymText, defaultPollutantSynonymTextColumn)
	c.Columns.BenchmarkSynonymName = trimOr(c.Columns.BenchmarkSynonymName, defaultBenchmarkSynonymNameColumn)
	c.Columns.BenchmarkSynonymText = trimOr(c.Columns.BenchmarkSynonymText, defaultBenchmarkSynonymTextColumn)
}

func (c *Config) normalizeSentinels() {
	if strings.TrimSpace(c.Sentinels.RegistryMissingCAS) == "" {
		c.Sentinels.RegistryMissingCAS = defaultRegistryMissingCAS
	}
	if strings.TrimSpace(c.Sentinels.BenchmarkMissingCAS) == "" {
		c.Sentinels.BenchmarkMissingCAS = defaultBenchmarkMissingCAS
	}
	c.Sentinels.RegistryMissingCAS = strings.TrimSpace(c.Sentinels.RegistryMissingCAS)
	c.Sentinels.BenchmarkMissingCAS = strings.TrimSpace(c.Sentinels.BenchmarkMissingCAS)
}

func (c *Config) normalizeOutputs() {
	c.Outputs.ExactMatches = strings.TrimSpace(c.Outputs.ExactMatches)
	if c.Outputs.ExactMatches == "" {
		c.Outputs.ExactMatches = defaultExactMatchesFile
	}
	c.Outputs.SynonymCandidates = strings.TrimSpace(c.Outputs.SynonymCandidates)
	if c.Outputs.SynonymCandidates == "" {
		c.Outputs.SynonymCandidates = defaultSynonymCandidatesFile
	}
}

func (c *Config) normalizeReport() {
	c.Report.FileName = strings.TrimSpace(c.Report.FileName)
	if c.Report.FileName == "" {
		c.Report.FileName = defaultReportFile
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
