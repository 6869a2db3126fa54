package pipeline_test

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"benchmatch/internal/config"
	"benchmatch/internal/dataset"
	"benchmatch/internal/logging"
	"benchmatch/internal/pipeline"
	"benchmatch/internal/services"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// fixtureConfig lays out a small but complete scenario:
//   - Diazinon matches benchmark Diazinon by CAS.
//   - CompoundX has no CAS entry but shares synonym AlphaChem with CompoundY.
//   - Hydroxycarbofuran, 3- appears twice in the thresholdless list and has
//     no CAS and no synonyms, so it matches nothing.
func fixtureConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = dir
	cfg.Paths.OutputDir = filepath.Join(dir, "results")
	cfg.Inputs.Benchmarks = filepath.Join(dir, "benchmarks.csv")
	cfg.Inputs.Thresholdless = filepath.Join(dir, "thresholdless.csv")
	cfg.Inputs.Registry = filepath.Join(dir, "registry.csv")
	cfg.Inputs.PollutantSynonyms = filepath.Join(dir, "pollutant_synonyms.csv")
	cfg.Inputs.BenchmarkSynonyms = filepath.Join(dir, "benchmark_synonyms.csv")

	writeFile(t, cfg.Inputs.Benchmarks,
		"Chemical,CAS No.,Criterion\n"+
			"Diazinon,333-41-5,0.1\n"+
			"CompoundY,555-55-5,2.5\n"+
			"Unreported,NR,9.9\n")
	writeFile(t, cfg.Inputs.Thresholdless,
		"CEDEN_Name\n"+
			"Diazinon\n"+
			"CompoundX\n"+
			"\"Hydroxycarbofuran, 3-\"\n"+
			"\"Hydroxycarbofuran, 3-\"\n")
	writeFile(t, cfg.Inputs.Registry,
		"CEDEN_Name,CAS_Number\n"+
			"Diazinon,333-41-5\n"+
			"CompoundX,777-77-7\n"+
			"\"Hydroxycarbofuran, 3-\",0\n")
	writeFile(t, cfg.Inputs.PollutantSynonyms,
		"CEDEN_Name,Synonym\n"+
			"CompoundX,AlphaChem\n"+
			"Diazinon,Diazol\n")
	writeFile(t, cfg.Inputs.BenchmarkSynonyms,
		"Chemical,Synonym\n"+
			"CompoundY,AlphaChem\n")
	return &cfg
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return records
}

func columnIndex(t *testing.T, header []string, name string) int {
	t.Helper()
	for i, col := range header {
		if col == name {
			return i
		}
	}
	t.Fatalf("column %q not found in %v", name, header)
	return -1
}

func TestRunEndToEnd(t *testing.T) {
	cfg := fixtureConfig(t)
	runner := pipeline.NewRunner(cfg, logging.NewNop())
	outcome, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if outcome.RunID == "" {
		t.Fatal("expected run ID")
	}
	if outcome.Counts.Thresholdless != 3 {
		t.Fatalf("expected duplicate collapsed to 3 thresholdless rows, got %d", outcome.Counts.Thresholdless)
	}
	if outcome.Counts.ExactMatches != 1 || outcome.Counts.SynonymCandidates != 1 {
		t.Fatalf("unexpected counts: %+v", outcome.Counts)
	}

	exact := readCSVFile(t, outcome.ExactMatchesPath)
	casIdx := columnIndex(t, exact[0], dataset.ColCASNumber)
	if exact[1][0] != "Diazinon" || exact[1][1] != "Diazinon" {
		t.Fatalf("unexpected exact row: %v", exact[1])
	}
	if exact[1][casIdx] != "333415" {
		t.Fatalf("expected hyphen-stripped CAS in output, got %q", exact[1][casIdx])
	}

	candidates := readCSVFile(t, outcome.CandidatesPath)
	if candidates[1][0] != "CompoundX" || candidates[1][1] != "CompoundY" {
		t.Fatalf("unexpected candidate row: %v", candidates[1])
	}

	// No pair may appear in both outputs.
	pairs := make(map[[2]string]struct{})
	for _, row := range exact[1:] {
		pairs[[2]string{row[0], row[1]}] = struct{}{}
	}
	for _, row := range candidates[1:] {
		if _, dup := pairs[[2]string{row[0], row[1]}]; dup {
			t.Fatalf("pair %v appears in both outputs", row[:2])
		}
	}

	if outcome.ReportPath == "" {
		t.Fatal("expected report path")
	}
	if _, err := os.Stat(outcome.ReportPath); err != nil {
		t.Fatalf("expected report file: %v", err)
	}
}

func TestRunReportDisabled(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Report.Enabled = false
	outcome, err := pipeline.NewRunner(cfg, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.ReportPath != "" {
		t.Fatal("expected no report when disabled")
	}
}

func TestRunAbortsBeforeOutputOnLoadError(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.Inputs.Registry, "WrongColumn\nDiazinon\n")
	_, err := pipeline.NewRunner(cfg, logging.NewNop()).Run(context.Background())
	if !errors.Is(err, services.ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	entries, readErr := os.ReadDir(cfg.Paths.OutputDir)
	if readErr != nil {
		t.Fatalf("read output dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no output files after failed run, found %d", len(entries))
	}
}

func TestRunConflictsWithHeldLock(t *testing.T) {
	cfg := fixtureConfig(t)
	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "benchmatch.lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("prepare lock: %v locked=%v", err, locked)
	}
	defer lock.Unlock()

	_, runErr := pipeline.NewRunner(cfg, logging.NewNop()).Run(context.Background())
	if !errors.Is(runErr, services.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", runErr)
	}
}

func TestRunRespectsCancelledContext(t *testing.T) {
	cfg := fixtureConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pipeline.NewRunner(cfg, logging.NewNop()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
