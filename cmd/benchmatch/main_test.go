package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	outputDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	outputDir := filepath.Join(base, "results")
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, base, outputDir)

	writeTestFile(t, filepath.Join(base, "benchmarks.csv"),
		"Chemical,CAS No.,Criterion\n"+
			"Diazinon,333-41-5,0.1\n"+
			"CompoundY,555-55-5,2.5\n")
	writeTestFile(t, filepath.Join(base, "thresholdless_pollutants.csv"),
		"CEDEN_Name\nDiazinon\nCompoundX\n")
	writeTestFile(t, filepath.Join(base, "pollutant_registry.csv"),
		"CEDEN_Name,CAS_Number\nDiazinon,333-41-5\nCompoundX,777-77-7\n")
	writeTestFile(t, filepath.Join(base, "pollutant_synonyms.csv"),
		"CEDEN_Name,Synonym\nCompoundX,AlphaChem\n")
	writeTestFile(t, filepath.Join(base, "benchmark_synonyms.csv"),
		"Chemical,Synonym\nCompoundY,AlphaChem\n")

	return &cliTestEnv{baseDir: base, configPath: configPath, outputDir: outputDir}
}

func writeTestConfig(t *testing.T, path, dataDir, outputDir string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
output_dir = %q
log_dir = %q
`, dataDir, outputDir, filepath.Join(dataDir, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLIRunCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run", "--preview", "3"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "finished in")
	requireContains(t, out, "exact matches")
	requireContains(t, out, "Diazinon")
	requireContains(t, out, "CompoundY")

	for _, name := range []string{"exact_matches.csv", "synonym_candidates.csv", "run_report.html"} {
		if _, err := os.Stat(filepath.Join(env.outputDir, name)); err != nil {
			t.Fatalf("expected output file %s: %v", name, err)
		}
	}
}

func TestCLIRunWithoutPreview(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run", "--preview", "0"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Exact matches:")
	if strings.Contains(out, "Diazinon") {
		t.Fatalf("expected no result preview, got:\n%s", out)
	}
}

func TestCLIRunReportsMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(filepath.Join(env.baseDir, "pollutant_registry.csv")); err != nil {
		t.Fatalf("remove registry: %v", err)
	}

	_, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err == nil {
		t.Fatal("expected run to fail without registry input")
	}
	requireContains(t, err.Error(), "pollutant_registry.csv")
}

func TestCLIVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "benchmatch")
}

func TestCLIInspectCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"inspect"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "benchmarks")
	requireContains(t, out, "thresholdless")
	requireContains(t, out, "registry")
	requireContains(t, out, "ceden_name")

	out, _, err = runCLI(t, []string{"inspect", "--preview", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect --preview: %v", err)
	}
	requireContains(t, out, "Diazinon")
}
