package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Inputs names the five source tables the pipeline consumes.
type Inputs struct {
	Benchmarks        string `toml:"benchmarks"`
	Thresholdless     string `toml:"thresholdless"`
	Registry          string `toml:"registry"`
	PollutantSynonyms string `toml:"pollutant_synonyms"`
	BenchmarkSynonyms string `toml:"benchmark_synonyms"`
}

// Columns maps source-specific header names onto the canonical schema. The
// upstream exports do not agree on naming, so every source declares its own
// name and CAS/synonym headers here.
type Columns struct {
	BenchmarkName        string `toml:"benchmark_name"`
	BenchmarkCAS         string `toml:"benchmark_cas"`
	RegistryName         string `toml:"registry_name"`
	RegistryCAS          string `toml:"registry_cas"`
	ThresholdlessName    string `toml:"thresholdless_name"`
	PollutantSynonymName string `toml:"pollutant_synonym_name"`
	PollutantSynonymText string `toml:"pollutant_synonym_text"`
	BenchmarkSynonymName string `toml:"benchmark_synonym_name"`
	BenchmarkSynonymText string `toml:"benchmark_synonym_text"`
}

// Sentinels holds the absent-CAS markers. The registry and the benchmark list
// use different markers and the pipeline keeps them distinct.
type Sentinels struct {
	RegistryMissingCAS  string `toml:"registry_missing_cas"`
	BenchmarkMissingCAS string `toml:"benchmark_missing_cas"`
}

// Outputs names the result files written into the output directory.
type Outputs struct {
	ExactMatches      string `toml:"exact_matches"`
	SynonymCandidates string `toml:"synonym_candidates"`
}

// Report contains configuration for the HTML run report.
type Report struct {
	Enabled  bool   `toml:"enabled"`
	FileName string `toml:"file_name"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for benchmatch.
//
// Configuration sections by subsystem:
//   - Paths: data, output, and log directories
//   - Inputs: the five source CSV files
//   - Columns: source header to canonical column mapping
//   - Sentinels: absent-CAS markers per source
//   - Outputs: result file names
//   - Report: HTML run report
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Inputs    Inputs    `toml:"inputs"`
	Columns   Columns   `toml:"columns"`
	Sentinels Sentinels `toml:"sentinels"`
	Outputs   Outputs   `toml:"outputs"`
	Report    Report    `toml:"report"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/benchmatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("benchmatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.OutputDir}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// InputFiles returns the five source paths keyed by dataset name.
func (c *Config) InputFiles() map[string]string {
	return map[string]string{
		"benchmarks":         c.Inputs.Benchmarks,
		"thresholdless":      c.Inputs.Thresholdless,
		"registry":           c.Inputs.Registry,
		"pollutant_synonyms": c.Inputs.PollutantSynonyms,
		"benchmark_synonyms": c.Inputs.BenchmarkSynonyms,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
