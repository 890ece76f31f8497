package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/August26/proxyscan-go/internal/model"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func readAll(t *testing.T, path string, defaultPort int) []model.Candidate {
	t.Helper()
	out := make(chan model.Candidate, 64)
	if err := Read(path, defaultPort, out); err != nil {
		t.Fatalf("unexpected read err: %v", err)
	}
	var got []model.Candidate
	for c := range out {
		got = append(got, c)
	}
	return got
}

func TestRead_BareIPAndIPPort(t *testing.T) {
	path := writeTempCSV(t, "IP Address\n203.0.113.5\n203.0.113.9:8080\n")

	got := readAll(t, path, 7890)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %#v", len(got), got)
	}
	if got[0].Addr.String() != "203.0.113.5:7890" {
		t.Fatalf("bare IP should get the default port, got %s", got[0].Addr)
	}
	if got[1].Addr.String() != "203.0.113.9:8080" {
		t.Fatalf("explicit port should win, got %s", got[1].Addr)
	}
}

func TestRead_SkipsUnparseableAddresses(t *testing.T) {
	path := writeTempCSV(t, "IP Address\nnot-an-ip\n203.0.113.5\n999.1.1.1\n")

	got := readAll(t, path, 7890)
	if len(got) != 1 {
		t.Fatalf("bad rows should be skipped silently, got %#v", got)
	}
	if got[0].Addr.String() != "203.0.113.5:7890" {
		t.Fatalf("wrong survivor: %s", got[0].Addr)
	}
}

func TestRead_FindsAddressColumnAmongOthers(t *testing.T) {
	path := writeTempCSV(t, "Source,IP Address,Notes\nscan,203.0.113.5:1080,ok\n")

	got := readAll(t, path, 7890)
	if len(got) != 1 || got[0].Addr.String() != "203.0.113.5:1080" {
		t.Fatalf("expected the IP Address column to be used, got %#v", got)
	}
}

func TestRead_EmptyFileYieldsNothing(t *testing.T) {
	path := writeTempCSV(t, "")

	got := readAll(t, path, 7890)
	if len(got) != 0 {
		t.Fatalf("empty file should yield zero candidates, got %#v", got)
	}
}

func TestCountRecords(t *testing.T) {
	path := writeTempCSV(t, "IP Address\n203.0.113.5\n203.0.113.9:8080\nnot-an-ip\n")

	n, err := CountRecords(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Count covers data rows, parseable or not; that is what the bar tracks.
	if n != 3 {
		t.Fatalf("expected 3 records, got %d", n)
	}
}

func TestCountRecords_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	n, err := CountRecords(path)
	if err != nil {
		t.Fatalf("empty file should not be an error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 records, got %d", n)
	}
}

func TestCountRecords_MissingFileIsHardError(t *testing.T) {
	if _, err := CountRecords(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCountRecords_MissingAddressColumn(t *testing.T) {
	path := writeTempCSV(t, "Host,Port\n203.0.113.5,8080\n")

	if _, err := CountRecords(path); err == nil {
		t.Fatalf("expected error for header without IP Address column")
	}
}

func TestCountRecords_RaggedRowsAreMalformed(t *testing.T) {
	path := writeTempCSV(t, "IP Address,Notes\n203.0.113.5,ok,extra-field\n")

	if _, err := CountRecords(path); err == nil {
		t.Fatalf("expected error for structurally malformed CSV")
	}
}
