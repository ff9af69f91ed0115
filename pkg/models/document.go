package models

// Untitled is the display name assigned to documents that have never been
// saved or loaded from disk.
const Untitled = "Untitled"

// Document represents one open editable unit of text (a tab) with its own
// persistence and modification state.
type Document struct {
	ID              int64  `json:"id"`
	DisplayName     string `json:"display_name"`
	FilePath        string `json:"file_path,omitempty"` // empty for unsaved documents
	Content         string `json:"content"`
	BaselineContent string `json:"baseline_content"` // content as of the last save or load
	Modified        bool   `json:"is_modified"`
}

// Recompute refreshes the derived Modified flag from Content and
// BaselineContent. It is the only way Modified changes; callers must never
// set the field directly.
func (d *Document) Recompute() {
	d.Modified = d.Content != d.BaselineContent
}

// Session is the persisted description of all currently open documents,
// which one is active, and the next id to issue.
type Session struct {
	Documents []*Document `json:"documents"`
	ActiveID  int64       `json:"active_id"`
	NextID    int64       `json:"next_id"`
}
