// Package history implements the per-document version history: a capped,
// newest-first list of content snapshots keyed by document id.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mfiguera/notepad/pkg/models"
)

// DefaultMaxEntries is the default per-document history cap.
const DefaultMaxEntries = 100

var (
	// ErrIndexOutOfRange indicates a restore index outside the document's
	// history.
	ErrIndexOutOfRange = errors.New("history index out of range")
	// ErrEmptyHistory indicates an export or restore against a document with
	// no history entries.
	ErrEmptyHistory = errors.New("no history entries")
)

// Log holds the version history for every document. Entries are newest-first
// and each document's list never exceeds the cap.
type Log struct {
	max     int
	entries map[int64][]models.HistoryEntry
}

// NewLog creates an empty history log. If max is 0 or negative,
// DefaultMaxEntries is used.
func NewLog(max int) *Log {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Log{
		max:     max,
		entries: make(map[int64][]models.HistoryEntry),
	}
}

// Append records a snapshot of content for the given document. It is a no-op
// when the newest entry already holds identical content, so repeated no-op
// saves do not accumulate. Returns whether a new entry was recorded.
func (l *Log) Append(docID int64, content, fileName string) bool {
	list := l.entries[docID]
	if len(list) > 0 && list[0].Content == content {
		return false
	}

	entry := models.HistoryEntry{
		Timestamp: time.Now(),
		Content:   content,
		FileName:  fileName,
	}

	list = append([]models.HistoryEntry{entry}, list...)
	if len(list) > l.max {
		list = list[:l.max]
	}
	l.entries[docID] = list
	return true
}

// Restore returns the snapshot content at index for the given document,
// first recording the current (pre-restore) content so the restore itself is
// reversible. current and fileName describe the document's state at the time
// of the call.
func (l *Log) Restore(docID int64, index int, current, fileName string) (string, error) {
	list := l.entries[docID]
	if len(list) == 0 {
		return "", ErrEmptyHistory
	}
	if index < 0 || index >= len(list) {
		return "", fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(list))
	}

	snapshot := list[index].Content
	l.Append(docID, current, fileName)
	return snapshot, nil
}

// Entries returns a copy of the document's history, newest first.
func (l *Log) Entries(docID int64) []models.HistoryEntry {
	list := l.entries[docID]
	out := make([]models.HistoryEntry, len(list))
	copy(out, list)
	return out
}

// Len returns the number of history entries for the document.
func (l *Log) Len(docID int64) int {
	return len(l.entries[docID])
}

// Clear discards all entries for the document. Irreversible.
func (l *Log) Clear(docID int64) {
	delete(l.entries, docID)
}

// Export renders the document's history as one text blob, newest first, each
// entry under a timestamp header. displayName labels the document in the
// export header. Returns ErrEmptyHistory when there is nothing to export.
func (l *Log) Export(docID int64, displayName string) (string, error) {
	list := l.entries[docID]
	if len(list) == 0 {
		return "", ErrEmptyHistory
	}

	rule := strings.Repeat("=", 60)
	var sb strings.Builder
	fmt.Fprintf(&sb, "History of: %s\n", displayName)
	fmt.Fprintf(&sb, "Exported: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	for _, entry := range list {
		fmt.Fprintf(&sb, "\n%s\n%s\n%s\n\n%s\n", rule, entry.Timestamp.Format("2006-01-02 15:04:05"), rule, entry.Content)
	}
	return sb.String(), nil
}
