package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Table is the in-memory cutoff dataset served by the API. Reads vastly
// outnumber writes; a writer only appears when the dataset file is reloaded.
type Table struct {
	mu      sync.RWMutex
	records []CutoffRecord
}

func NewTable(records []CutoffRecord) *Table {
	return &Table{records: records}
}

// Records returns a copy of the current dataset. Callers may sort or
// filter the result without holding any lock.
func (t *Table) Records() []CutoffRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]CutoffRecord, len(t.records))
	copy(out, t.records)
	return out
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// Swap atomically replaces the dataset with a new snapshot.
func (t *Table) Swap(records []CutoffRecord) {
	t.mu.Lock()
	t.records = records
	t.mu.Unlock()
}

// LoadFile reads a cutoff dataset from a JSON file.
func LoadFile(path string) ([]CutoffRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var records []CutoffRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}

	return records, nil
}

// WriteFile persists records as indented JSON. The write goes through a
// temp file and a rename so a failure never clobbers the previous dataset.
func WriteFile(path string, records []CutoffRecord) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dataset-*.json")
	if err != nil {
		return fmt.Errorf("create temp dataset: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close dataset: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace dataset: %w", err)
	}

	return nil
}
