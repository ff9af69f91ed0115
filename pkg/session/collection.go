// Package session holds the in-memory document collection and its
// synchronization with the persistent session store.
package session

import (
	"fmt"

	"github.com/mfiguera/notepad/pkg/models"
)

// ConfirmFunc is the injected confirmation capability used to gate
// destructive actions. It returns whether the user approved.
type ConfirmFunc func(prompt string) bool

// Collection is the ordered set of open documents, the active document
// pointer, and the monotonic id counter. It is pure data management: no I/O,
// no rendering.
type Collection struct {
	docs     []*models.Document
	activeID int64
	nextID   int64
	onChange func()
}

// NewCollection creates an empty collection. Ids start at 1.
func NewCollection() *Collection {
	return &Collection{nextID: 1}
}

// SetOnChange registers an observer invoked after every mutation so the
// presentation layer can re-render without the core touching it.
func (c *Collection) SetOnChange(fn func()) {
	c.onChange = fn
}

// Create appends a new document with a fresh id and makes it active.
// name defaults to models.Untitled; filePath may be empty.
func (c *Collection) Create(name, content, filePath string) *models.Document {
	if name == "" {
		name = models.Untitled
	}

	doc := &models.Document{
		ID:              c.nextID,
		DisplayName:     name,
		FilePath:        filePath,
		Content:         content,
		BaselineContent: content,
	}
	c.nextID++

	c.docs = append(c.docs, doc)
	c.activeID = doc.ID
	c.notify()
	return doc
}

// Mutate replaces the document's content and recomputes the modified flag.
// Returns false when id does not exist.
func (c *Collection) Mutate(id int64, content string) bool {
	doc := c.Get(id)
	if doc == nil {
		return false
	}
	doc.Content = content
	doc.Recompute()
	c.notify()
	return true
}

// MarkSaved records a successful save to path: the baseline becomes content,
// the content that was actually written, and the display name follows the
// file name. The modified flag is recomputed rather than cleared, so a
// document edited while the write was in flight stays modified.
func (c *Collection) MarkSaved(id int64, path, name, content string) bool {
	doc := c.Get(id)
	if doc == nil {
		return false
	}
	doc.FilePath = path
	doc.DisplayName = name
	doc.BaselineContent = content
	doc.Recompute()
	c.notify()
	return true
}

// Close removes the document. A modified document requires approval from
// confirm first; a declined confirmation aborts the close. The collection is
// never left empty: closing the last document immediately creates a blank
// replacement. When the closed document was active, activity moves to the
// last document in tab order. Returns whether the document was closed.
func (c *Collection) Close(id int64, confirm ConfirmFunc) bool {
	doc := c.Get(id)
	if doc == nil {
		return false
	}

	if doc.Modified && confirm != nil {
		if !confirm(fmt.Sprintf("Close %q without saving changes?", doc.DisplayName)) {
			return false
		}
	}

	kept := c.docs[:0]
	for _, d := range c.docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	c.docs = kept

	if len(c.docs) == 0 {
		c.Create(models.Untitled, "", "")
		return true
	}
	if c.activeID == id {
		c.activeID = c.docs[len(c.docs)-1].ID
	}
	c.notify()
	return true
}

// SwitchActive makes id the active document. Unknown ids are a silent no-op.
func (c *Collection) SwitchActive(id int64) bool {
	if c.Get(id) == nil {
		return false
	}
	c.activeID = id
	c.notify()
	return true
}

// Get returns the document with the given id, or nil.
func (c *Collection) Get(id int64) *models.Document {
	for _, d := range c.docs {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Active returns the active document, or nil when the collection is empty.
func (c *Collection) Active() *models.Document {
	return c.Get(c.activeID)
}

// ActiveID returns the active document id.
func (c *Collection) ActiveID() int64 { return c.activeID }

// Len returns the number of open documents.
func (c *Collection) Len() int { return len(c.docs) }

// Documents returns the open documents in tab order. The slice is a copy;
// the documents are shared.
func (c *Collection) Documents() []*models.Document {
	out := make([]*models.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Snapshot captures the collection as a serializable session.
func (c *Collection) Snapshot() *models.Session {
	return &models.Session{
		Documents: c.Documents(),
		ActiveID:  c.activeID,
		NextID:    c.nextID,
	}
}

// load replaces the collection's state from a restored session. Ids are
// preserved; the id counter stays strictly above every restored id so ids
// are never reused. An active id that no longer resolves falls back to the
// last document.
func (c *Collection) load(s *models.Session) {
	c.docs = s.Documents
	c.nextID = s.NextID
	for _, d := range c.docs {
		d.Recompute()
		if d.ID >= c.nextID {
			c.nextID = d.ID + 1
		}
	}
	if c.nextID < 1 {
		c.nextID = 1
	}

	c.activeID = s.ActiveID
	if c.Get(c.activeID) == nil && len(c.docs) > 0 {
		c.activeID = c.docs[len(c.docs)-1].ID
	}
	c.notify()
}

func (c *Collection) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
