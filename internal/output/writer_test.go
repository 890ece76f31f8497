package output

import (
	"bytes"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/August26/proxyscan-go/internal/model"
)

func sampleResults() []model.Result {
	return []model.Result{
		{IP: netip.MustParseAddr("203.0.113.5"), ResponseTimeMs: 42, Location: "Paris, France"},
		{IP: netip.MustParseAddr("203.0.113.9"), ResponseTimeMs: 120, Location: "Unknown, Unknown"},
	}
}

func TestPrintResultsTable(t *testing.T) {
	var buf bytes.Buffer
	PrintResultsTable(&buf, sampleResults())

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "1") || !strings.Contains(lines[1], "203.0.113.5") {
		t.Fatalf("rank 1 row wrong: %q", lines[1])
	}
	if !strings.Contains(lines[2], "120 ms") {
		t.Fatalf("rank 2 row wrong: %q", lines[2])
	}
}

func TestWriteFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteFile(path, "csv", sampleResults()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	if got[0] != "IP Address,Response Time (ms),Location" {
		t.Fatalf("bad header: %q", got[0])
	}
	if got[1] != `203.0.113.5,42,"Paris, France"` {
		t.Fatalf("bad row: %q", got[1])
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
}

func TestWriteFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteFile(path, "json", sampleResults()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), `"203.0.113.5"`) ||
		!strings.Contains(string(data), `"response_time_ms": 42`) {
		t.Fatalf("unexpected json:\n%s", data)
	}
}

func TestWriteFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")
	if err := WriteFile(path, "xml", sampleResults()); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestWriteFile_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.csv")
	if err := WriteFile(path, "csv", sampleResults()); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}

func TestPrintNoResults(t *testing.T) {
	var buf bytes.Buffer
	PrintNoResults(&buf)
	if !strings.Contains(buf.String(), "No working HTTP proxies were found.") {
		t.Fatalf("missing closing message: %q", buf.String())
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, model.RunStats{
		Candidates:            4,
		Working:               2,
		Failures:              1,
		Faults:                1,
		SuccessRatePct:        50,
		AvgLatencyMs:          81,
		BestLatencyMs:         42,
		TotalProcessingTimeMs: 1500,
	})

	out := buf.String()
	for _, want := range []string{"Candidates tested:   4", "Working proxies:     2", "Best response time:  42 ms", "1.50 s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
