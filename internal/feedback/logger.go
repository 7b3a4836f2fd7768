// Package feedback appends user feedback on chatbot answers to a CSV
// file for later review.
package feedback

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

var header = []string{"entry_id", "timestamp", "type", "user_message", "bot_response", "correction"}

// Entry is one piece of user feedback on a bot response.
type Entry struct {
	Type       string `json:"type"` // "positive", "negative", "correction"
	Message    string `json:"message"`
	Response   string `json:"response"`
	Correction string `json:"correction"`
}

// Logger appends feedback entries to a CSV file. Safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	path   string
	policy *bluemonday.Policy
}

func NewLogger(path string) *Logger {
	return &Logger{
		path: path,
		// Bot responses are model-rendered markdown that may carry HTML;
		// strip all tags before persisting.
		policy: bluemonday.StrictPolicy(),
	}
}

// Record appends an entry and returns its generated id. The header row
// is written once, when the file does not exist yet.
func (l *Logger) Record(e Entry) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	writeHeader := false
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open feedback log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return "", fmt.Errorf("write feedback header: %w", err)
		}
	}

	entryID := uuid.New().String()
	row := []string{
		entryID,
		time.Now().Format(time.RFC3339),
		e.Type,
		e.Message,
		l.policy.Sanitize(e.Response),
		e.Correction,
	}
	if err := w.Write(row); err != nil {
		return "", fmt.Errorf("write feedback entry: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush feedback log: %w", err)
	}

	return entryID, nil
}
