package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutoffs.json")

	records := []CutoffRecord{
		{College: "VJTI Mumbai", Branch: "Computer Engineering", Category: "General", CutoffPercentile: 98.1234, Source: "collegesearch"},
		{College: "COEP Pune", Branch: "Mechanical Engineering", Category: "General", CutoffPercentile: 91.5, Source: "collegedunia"},
	}

	if err := WriteFile(path, records); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if len(loaded) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(loaded))
	}
	for i := range records {
		if loaded[i] != records[i] {
			t.Errorf("record %d mismatch: got %+v, want %+v", i, loaded[i], records[i])
		}
	}
}

func TestWriteFileIndented(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutoffs.json")

	records := []CutoffRecord{
		{College: "VJTI Mumbai", Branch: "Computer Engineering", Category: "General", CutoffPercentile: 98.0, Source: "mock_data"},
	}
	if err := WriteFile(path, records); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "\n    \"college\"") {
		t.Errorf("expected 4-space indented output, got:\n%s", data)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestTableSwap(t *testing.T) {
	table := NewTable(nil)
	if table.Len() != 0 {
		t.Fatalf("expected empty table, got %d", table.Len())
	}

	table.Swap([]CutoffRecord{
		{College: "VJTI Mumbai", Branch: "Computer Engineering", Category: "General", CutoffPercentile: 98.0},
	})
	if table.Len() != 1 {
		t.Fatalf("expected 1 record after swap, got %d", table.Len())
	}

	// A copy is returned; mutating it must not affect the table.
	records := table.Records()
	records[0].College = "mutated"
	if table.Records()[0].College != "VJTI Mumbai" {
		t.Error("Records() must return a copy")
	}
}
