package models

import (
	"path/filepath"
	"time"
)

// FileRef is one entry in the recent or pinned file lists.
type FileRef struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// NewFileRef builds a FileRef for the given absolute path, deriving the
// display name from the basename and stamping the current time.
func NewFileRef(path string) FileRef {
	return FileRef{
		Path:      path,
		Name:      filepath.Base(path),
		Timestamp: time.Now(),
	}
}
