package models

import "time"

// HistoryEntry is an immutable snapshot of a document's content at a point
// in time. Entries are stored newest-first per document.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	FileName  string    `json:"file_name"` // display name at capture time
}
