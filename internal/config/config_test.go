package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"benchmatch/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("BENCHMATCH_DATA_DIR", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "benchmatch")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.OutputDir != filepath.Join(wantData, "results") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Inputs.Benchmarks != filepath.Join(wantData, "benchmarks.csv") {
		t.Fatalf("expected relative input resolved against data dir, got %q", cfg.Inputs.Benchmarks)
	}
	if cfg.Sentinels.RegistryMissingCAS != "0" || cfg.Sentinels.BenchmarkMissingCAS != "NR" {
		t.Fatalf("unexpected sentinels: %+v", cfg.Sentinels)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if !cfg.Report.Enabled {
		t.Fatal("expected report enabled by default")
	}
}

func TestLoadHonoursDataDirEnv(t *testing.T) {
	tempHome := t.TempDir()
	dataDir := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("BENCHMATCH_DATA_DIR", dataDir)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != dataDir {
		t.Fatalf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
}

func TestLoadConfiguredDataDirBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	envDir := t.TempDir()
	t.Setenv("BENCHMATCH_DATA_DIR", envDir)

	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + dir + `"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != dir {
		t.Fatalf("expected configured data dir to win over env, got %q", cfg.Paths.DataDir)
	}
}

func TestLoadParsesFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + dir + `"`,
		"",
		"[inputs]",
		`benchmarks = "eco_benchmarks.csv"`,
		"",
		"[columns]",
		`benchmark_cas = "CAS Registry"`,
		"",
		"[logging]",
		`format = "json"`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Inputs.Benchmarks != filepath.Join(dir, "eco_benchmarks.csv") {
		t.Fatalf("unexpected benchmarks path: %q", cfg.Inputs.Benchmarks)
	}
	if cfg.Columns.BenchmarkCAS != "CAS Registry" {
		t.Fatalf("unexpected CAS column: %q", cfg.Columns.BenchmarkCAS)
	}
	if cfg.Inputs.Registry != filepath.Join(dir, "pollutant_registry.csv") {
		t.Fatalf("expected default registry file under data dir, got %q", cfg.Inputs.Registry)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadRejectsEqualSentinels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[sentinels]",
		`registry_missing_cas = "NR"`,
		`benchmark_missing_cas = "NR"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for equal sentinels")
	}
}

func TestLoadRejectsEqualOutputNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[outputs]",
		`exact_matches = "matches.csv"`,
		`synonym_candidates = "matches.csv"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for equal output names")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Outputs.ExactMatches != "exact_matches.csv" {
		t.Fatalf("unexpected sample outputs: %+v", cfg.Outputs)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, d := range []string{cfg.Paths.DataDir, cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", d, err)
		}
	}
}
