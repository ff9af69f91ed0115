// Package hostsvc defines the host services boundary: file I/O, open/save
// dialogs, and OS integration consumed by the editing core. The core never
// touches the filesystem or the user directly; it goes through this
// interface so its decision logic stays testable.
package hostsvc

import "errors"

var (
	// ErrFileNotFound indicates an open of a path that does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrCancelled indicates the user dismissed a dialog. It is a normal
	// outcome, not a failure: callers abandon the operation without side
	// effects.
	ErrCancelled = errors.New("dialog cancelled")
)

// Services is the contract the editing core consumes.
type Services interface {
	// OpenDialog asks the user for one or more files to open. Returns
	// ErrCancelled when dismissed.
	OpenDialog() ([]string, error)
	// SaveDialog asks the user for a destination path. Returns ErrCancelled
	// when dismissed.
	SaveDialog() (string, error)
	// ReadFile returns the content of path. Returns ErrFileNotFound when the
	// path does not exist.
	ReadFile(path string) (string, error)
	// WriteFile writes content to path.
	WriteFile(path, content string) error
	// RevealInFileManager shows path in the OS file manager.
	RevealInFileManager(path string) error
	// RegisterRecentDocument adds path to the OS recent-documents list.
	// Best-effort; failures are never surfaced.
	RegisterRecentDocument(path string)
	// ClearRecentDocuments empties the OS recent-documents list. Best-effort.
	ClearRecentDocuments()
}
