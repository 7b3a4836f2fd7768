package feedback

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return rows
}

func TestRecordWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	l := NewLogger(path)

	id1, err := l.Record(Entry{Type: "positive", Message: "hi", Response: "hello"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	id2, err := l.Record(Entry{Type: "negative", Message: "cutoff?", Response: "wrong answer", Correction: "it is 96.5"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id1 == "" || id1 == id2 {
		t.Errorf("expected distinct non-empty ids, got %q and %q", id1, id2)
	}

	rows := readAll(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 entries, got %d rows", len(rows))
	}
	if rows[0][0] != "entry_id" || rows[0][5] != "correction" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != id1 || rows[1][2] != "positive" {
		t.Errorf("unexpected first entry: %v", rows[1])
	}
	if rows[2][5] != "it is 96.5" {
		t.Errorf("unexpected correction: %v", rows[2])
	}
}

func TestRecordSanitizesResponse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	l := NewLogger(path)

	if _, err := l.Record(Entry{
		Type:     "negative",
		Message:  "q",
		Response: `<script>alert("x")</script><b>VJTI</b> cutoff`,
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	rows := readAll(t, path)
	resp := rows[1][4]
	if strings.Contains(resp, "<") {
		t.Errorf("response not sanitized: %q", resp)
	}
	if !strings.Contains(resp, "VJTI") {
		t.Errorf("sanitizer dropped text content: %q", resp)
	}
}
