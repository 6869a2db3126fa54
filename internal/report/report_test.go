package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"benchmatch/internal/report"
	"benchmatch/internal/table"
)

func resultTable() *table.Table {
	return table.MustNew(
		[]string{"ceden_name", "benchmark_name", "cas_number"},
		[][]string{{"Diazinon", "Diazinon", "333415"}},
	)
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run_report.html")
	info := report.RunInfo{RunID: "run-1", StartedAt: time.Now(), Duration: 42 * time.Millisecond}
	sections := []report.Section{
		{Title: "Exact matches (CAS)", Note: "Confirmed.", Table: resultTable()},
		{Title: "Synonym candidates", Note: "Needs review.", Table: table.MustNew([]string{"ceden_name"}, nil)},
	}
	if err := report.WriteHTML(path, info, sections); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(raw)
	for _, want := range []string{"run-1", "Exact matches (CAS)", "Diazinon", "333415", "Synonym candidates", "No rows."} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in report, got:\n%s", want, html)
		}
	}
}

func TestPreviewLimitsRows(t *testing.T) {
	tbl := table.MustNew([]string{"ceden_name"}, [][]string{{"A"}, {"B"}, {"C"}})
	out := report.Preview(tbl, 2)
	if !strings.Contains(out, "A") || !strings.Contains(out, "B") {
		t.Fatalf("expected first rows in preview:\n%s", out)
	}
	if strings.Contains(out, "C") {
		t.Fatalf("expected third row truncated:\n%s", out)
	}
	if !strings.Contains(out, "1 more row") {
		t.Fatalf("expected truncation footer:\n%s", out)
	}
}

func TestPreviewFullTable(t *testing.T) {
	tbl := resultTable()
	out := report.Preview(tbl, 10)
	for _, want := range []string{"ceden_name", "benchmark_name", "Diazinon"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in preview:\n%s", want, out)
		}
	}
}
