// Package registry manages the recent and pinned file lists. The two lists
// persist independently as JSON files in the data dir and outlive any open
// document.
package registry

import (
	"fmt"
	"path/filepath"

	"github.com/mfiguera/notepad/pkg/models"
)

// DefaultMaxRecent is the default cap on the recent list.
const DefaultMaxRecent = 30

const (
	recentFileName = "recent-files.json"
	pinnedFileName = "pinned-files.json"
)

// RecentDocumentHost is the slice of host services the registry forwards to:
// OS-level recent-document integration, best-effort only.
type RecentDocumentHost interface {
	RegisterRecentDocument(path string)
	ClearRecentDocuments()
}

// Registry holds the recent (bounded, newest-first) and pinned (unbounded,
// insertion-ordered set) file lists.
type Registry struct {
	dataDir   string
	maxRecent int
	recent    []models.FileRef
	pinned    []models.FileRef
	host      RecentDocumentHost
	onChange  func()
}

// New creates a registry persisting under dataDir. host may be nil.
// If maxRecent is 0 or negative, DefaultMaxRecent is used.
func New(dataDir string, maxRecent int, host RecentDocumentHost) *Registry {
	if maxRecent <= 0 {
		maxRecent = DefaultMaxRecent
	}
	return &Registry{
		dataDir:   dataDir,
		maxRecent: maxRecent,
		host:      host,
	}
}

// SetOnChange registers a listener invoked after every actual change to
// either list (e.g. a menu re-render).
func (r *Registry) SetOnChange(fn func()) {
	r.onChange = fn
}

// Load reads both lists from disk. Missing or corrupt files are treated as
// empty lists, never as errors.
func (r *Registry) Load() {
	r.recent = loadRefs(filepath.Join(r.dataDir, recentFileName))
	r.pinned = loadRefs(filepath.Join(r.dataDir, pinnedFileName))
	if len(r.recent) > r.maxRecent {
		r.recent = r.recent[:r.maxRecent]
	}
}

// RecordOpened moves path to the front of the recent list, collapsing any
// existing entry for the same path, truncates to the cap, persists, and
// registers the path with the OS recent-documents list.
func (r *Registry) RecordOpened(path string) error {
	kept := r.recent[:0]
	for _, ref := range r.recent {
		if ref.Path != path {
			kept = append(kept, ref)
		}
	}
	r.recent = append([]models.FileRef{models.NewFileRef(path)}, kept...)
	if len(r.recent) > r.maxRecent {
		r.recent = r.recent[:r.maxRecent]
	}

	if err := r.saveRecent(); err != nil {
		return err
	}
	r.notify()
	if r.host != nil {
		r.host.RegisterRecentDocument(path)
	}
	return nil
}

// ClearRecents empties the recent list, persists, and clears the OS-level
// recent-documents list.
func (r *Registry) ClearRecents() error {
	r.recent = nil
	if err := r.saveRecent(); err != nil {
		return err
	}
	r.notify()
	if r.host != nil {
		r.host.ClearRecentDocuments()
	}
	return nil
}

// Pin adds path to the pinned list. Pinning an already-pinned path is a
// no-op.
func (r *Registry) Pin(path string) error {
	if r.IsPinned(path) {
		return nil
	}
	r.pinned = append(r.pinned, models.NewFileRef(path))
	if err := r.savePinned(); err != nil {
		return err
	}
	r.notify()
	return nil
}

// Unpin removes path from the pinned list. Unpinning a non-pinned path is a
// no-op.
func (r *Registry) Unpin(path string) error {
	kept := r.pinned[:0]
	removed := false
	for _, ref := range r.pinned {
		if ref.Path == path {
			removed = true
			continue
		}
		kept = append(kept, ref)
	}
	r.pinned = kept
	if !removed {
		return nil
	}
	if err := r.savePinned(); err != nil {
		return err
	}
	r.notify()
	return nil
}

// IsPinned reports whether path is in the pinned list.
func (r *Registry) IsPinned(path string) bool {
	for _, ref := range r.pinned {
		if ref.Path == path {
			return true
		}
	}
	return false
}

// Recent returns a copy of the recent list, newest first.
func (r *Registry) Recent() []models.FileRef {
	out := make([]models.FileRef, len(r.recent))
	copy(out, r.recent)
	return out
}

// Pinned returns a copy of the pinned list in insertion order.
func (r *Registry) Pinned() []models.FileRef {
	out := make([]models.FileRef, len(r.pinned))
	copy(out, r.pinned)
	return out
}

func (r *Registry) saveRecent() error {
	if err := saveRefs(filepath.Join(r.dataDir, recentFileName), r.recent); err != nil {
		return fmt.Errorf("save recent files: %w", err)
	}
	return nil
}

func (r *Registry) savePinned() error {
	if err := saveRefs(filepath.Join(r.dataDir, pinnedFileName), r.pinned); err != nil {
		return fmt.Errorf("save pinned files: %w", err)
	}
	return nil
}

func (r *Registry) notify() {
	if r.onChange != nil {
		r.onChange()
	}
}
