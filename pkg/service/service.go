// Package service wires the document collection, history log, registries,
// and host services into the editing controller. It owns all application
// state explicitly; there are no package-level globals.
package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mfiguera/notepad/pkg/history"
	"github.com/mfiguera/notepad/pkg/hostsvc"
	"github.com/mfiguera/notepad/pkg/markup"
	"github.com/mfiguera/notepad/pkg/migration"
	"github.com/mfiguera/notepad/pkg/models"
	"github.com/mfiguera/notepad/pkg/registry"
	"github.com/mfiguera/notepad/pkg/search"
	"github.com/mfiguera/notepad/pkg/session"
	"github.com/mfiguera/notepad/pkg/store"
)

// ErrSaveInFlight indicates a save was requested for a document that already
// has one pending. Saves on the same document never interleave; a new
// request while one is in flight is rejected.
var ErrSaveInFlight = errors.New("save already in progress for this document")

// Config holds service configuration
type Config struct {
	DataDir         string
	Editor          string
	MaxRecent       int
	MaxHistory      int
	SessionInterval time.Duration
	HistoryInterval time.Duration
}

// Service is the editing core controller.
type Service struct {
	Config     *Config
	Host       hostsvc.Services
	Collection *session.Collection
	History    *history.Log
	Registry   *registry.Registry
	Index      *search.Index

	confirm session.ConfirmFunc
	logger  *logrus.Logger
	store   *store.Store
	sync    *session.Synchronizer

	mu     sync.Mutex
	saving map[int64]bool
}

// New opens the persistent stores under cfg.DataDir, restores the previous
// session (or creates one blank document), and loads history and the
// recent/pinned registries. confirm gates destructive actions; a nil confirm
// approves everything.
func New(cfg *Config, host hostsvc.Services, confirm session.ConfirmFunc, logger *logrus.Logger) (*Service, error) {
	st, err := store.Open(filepath.Join(cfg.DataDir, "notepad.db"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// Older releases kept state as loose JSON files; pull those in before
	// restoring so they are not shadowed by a fresh blank session.
	if _, err := migration.Migrate(cfg.DataDir, st, migration.Options{}, io.Discard); err != nil && logger != nil {
		logger.WithError(err).Warn("legacy state import failed")
	}

	idx, err := search.NewIndex(filepath.Join(cfg.DataDir, "index.db"))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("open history index: %w", err)
	}

	coll := session.NewCollection()

	s := &Service{
		Config:     cfg,
		Host:       host,
		Collection: coll,
		Registry:   registry.New(cfg.DataDir, cfg.MaxRecent, host),
		Index:      idx,
		confirm:    confirm,
		logger:     logger,
		store:      st,
		sync:       session.NewSynchronizer(st, coll, logger),
		saving:     make(map[int64]bool),
	}

	s.History, err = history.Load(st, cfg.MaxHistory)
	if err != nil {
		// Corrupt history is absence of history, not a failure.
		s.warn(err, "history unreadable, starting empty")
	}
	s.Registry.Load()

	restored, err := s.sync.Restore()
	if err != nil {
		idx.Close()
		st.Close()
		return nil, err
	}
	if !restored {
		coll.Create(models.Untitled, "", "")
		if err := s.sync.Persist(); err != nil {
			s.warn(err, "persist initial session")
		}
	}

	return s, nil
}

// NewTab creates a new document and makes it active. Non-blank initial
// content gets an initial history entry.
func (s *Service) NewTab(name, content, filePath string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Collection.Create(name, content, filePath)
	if !markup.IsBlank(content) {
		s.History.Append(doc.ID, content, doc.DisplayName)
		s.persistHistory(doc.ID)
	}
	return doc, s.sync.Persist()
}

// OpenPath reads the file at path into a new tab and records it in the
// recent list. A missing file surfaces as hostsvc.ErrFileNotFound.
func (s *Service) OpenPath(path string) (*models.Document, error) {
	content, err := s.Host.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := s.NewTab(filepath.Base(path), content, path)
	if err != nil {
		return nil, err
	}
	if err := s.Registry.RecordOpened(path); err != nil {
		s.warn(err, "update recent files")
	}
	return doc, nil
}

// OpenWithDialog asks the host for files to open and opens each. Returns
// hostsvc.ErrCancelled when the dialog is dismissed.
func (s *Service) OpenWithDialog() ([]*models.Document, error) {
	paths, err := s.Host.OpenDialog()
	if err != nil {
		return nil, err
	}

	var docs []*models.Document
	for _, path := range paths {
		doc, err := s.OpenPath(path)
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Save writes the document to its file path, obtaining a path via the save
// dialog first when it has none. A cancelled dialog abandons the save with
// no side effects; a failed write leaves the modified flag and baseline
// untouched.
func (s *Service) Save(id int64) error {
	return s.save(id, false)
}

// SaveAs always asks for a destination path, then saves.
func (s *Service) SaveAs(id int64) error {
	return s.save(id, true)
}

// SaveTo saves the document to an explicit path, bypassing the dialog.
func (s *Service) SaveTo(id int64, path string) error {
	s.mu.Lock()
	doc := s.Collection.Get(id)
	if doc == nil {
		s.mu.Unlock()
		return fmt.Errorf("no document with id %d", id)
	}
	if s.saving[id] {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.saving[id] = true
	content := doc.Content
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.saving, id)
		s.mu.Unlock()
	}()

	if err := s.Host.WriteFile(path, content); err != nil {
		return err
	}
	return s.commitSave(id, path, filepath.Base(path), content)
}

func (s *Service) save(id int64, forceDialog bool) error {
	s.mu.Lock()
	doc := s.Collection.Get(id)
	if doc == nil {
		s.mu.Unlock()
		return fmt.Errorf("no document with id %d", id)
	}
	if s.saving[id] {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.saving[id] = true
	path := doc.FilePath
	content := doc.Content
	name := doc.DisplayName
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.saving, id)
		s.mu.Unlock()
	}()

	if path == "" || forceDialog {
		p, err := s.Host.SaveDialog()
		if err != nil {
			return err
		}
		path = p
		name = filepath.Base(p)
	}

	if err := s.Host.WriteFile(path, content); err != nil {
		return err
	}
	return s.commitSave(id, path, name, content)
}

// commitSave applies the in-memory consequences of a successful write: the
// saved content is snapshotted, the document marked clean, and the path
// promoted in the recent list.
func (s *Service) commitSave(id int64, path, name, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History.Append(id, content, name)
	s.persistHistory(id)
	s.Collection.MarkSaved(id, path, name, content)
	if err := s.Registry.RecordOpened(path); err != nil {
		s.warn(err, "update recent files")
	}
	return s.sync.Persist()
}

// CloseTab closes the document, asking for confirmation when it has unsaved
// changes. force discards unsaved changes without asking. Returns whether the
// close happened.
func (s *Service) CloseTab(id int64, force bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	confirm := s.confirm
	if force {
		confirm = func(string) bool { return true }
	}
	if !s.Collection.Close(id, confirm) {
		return false, nil
	}
	return true, s.sync.Persist()
}

// Fresh closes every open tab (confirmation-gated per modified document)
// and leaves a single blank one.
func (s *Service) Fresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.Collection.Documents() {
		s.Collection.Close(doc.ID, s.confirm)
	}
	return s.sync.Persist()
}

// Switch makes id the active document. Unknown ids are a silent no-op.
func (s *Service) Switch(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Collection.SwitchActive(id) {
		return nil
	}
	return s.sync.Persist()
}

// SetContent replaces the document's content, recomputing the modified flag.
func (s *Service) SetContent(id int64, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Collection.Mutate(id, content) {
		return fmt.Errorf("no document with id %d", id)
	}
	return s.sync.Persist()
}

// Find locates term in the document's plain-text projection starting at
// offset from, returning the absolute index and whether it was found.
func (s *Service) Find(id int64, term string, from int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Collection.Get(id)
	if doc == nil || term == "" {
		return -1, false
	}
	plain := markup.ForContent(doc.Content).Plain(doc.Content)
	if from < 0 || from > len(plain) {
		from = 0
	}
	i := indexFrom(plain, term, from)
	if i < 0 {
		// Wrap around to the beginning, like search restarting from the top.
		i = indexFrom(plain, term, 0)
	}
	return i, i >= 0
}

// ReplaceAll replaces every occurrence of old in the document's content and
// returns the number of replacements. Zero occurrences leave the document
// untouched.
func (s *Service) ReplaceAll(id int64, old, new string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Collection.Get(id)
	if doc == nil {
		return 0, fmt.Errorf("no document with id %d", id)
	}
	if old == "" {
		return 0, errors.New("search term is empty")
	}

	n := strings.Count(doc.Content, old)
	if n == 0 {
		return 0, nil
	}
	s.Collection.Mutate(id, strings.ReplaceAll(doc.Content, old, new))
	return n, s.sync.Persist()
}

// Stats returns line/word/char counts of the document's plain projection.
func (s *Service) Stats(id int64) (markup.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Collection.Get(id)
	if doc == nil {
		return markup.Stats{}, fmt.Errorf("no document with id %d", id)
	}
	return markup.Count(doc.Content), nil
}

// Reveal shows the document's file in the OS file manager. Unsaved
// documents have no file to reveal.
func (s *Service) Reveal(id int64) error {
	s.mu.Lock()
	doc := s.Collection.Get(id)
	s.mu.Unlock()

	if doc == nil {
		return fmt.Errorf("no document with id %d", id)
	}
	if doc.FilePath == "" {
		return errors.New("save the file first")
	}
	return s.Host.RevealInFileManager(doc.FilePath)
}

// PinDocument pins the document's file path. Unsaved documents cannot be
// pinned.
func (s *Service) PinDocument(id int64) error {
	s.mu.Lock()
	doc := s.Collection.Get(id)
	s.mu.Unlock()

	if doc == nil {
		return fmt.Errorf("no document with id %d", id)
	}
	if doc.FilePath == "" {
		return errors.New("save the file first")
	}
	return s.Registry.Pin(doc.FilePath)
}

// PersistSession writes the session snapshot. Used by the autosave
// scheduler; safe to call arbitrarily often.
func (s *Service) PersistSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sync.Persist()
}

// SweepHistory appends a history snapshot for every document with non-blank
// content, then persists the history map once.
func (s *Service) SweepHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, doc := range s.Collection.Documents() {
		if markup.IsBlank(doc.Content) {
			continue
		}
		if s.History.Append(doc.ID, doc.Content, doc.DisplayName) {
			s.reindex(doc.ID)
			changed = true
		}
	}
	if changed {
		if err := s.History.Save(s.store); err != nil {
			s.warn(err, "persist history")
		}
	}
}

// RestoreHistory applies the history snapshot at index to the document,
// recording the pre-restore content first so the restore is reversible.
func (s *Service) RestoreHistory(id int64, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Collection.Get(id)
	if doc == nil {
		return fmt.Errorf("no document with id %d", id)
	}

	content, err := s.History.Restore(id, index, doc.Content, doc.DisplayName)
	if err != nil {
		return err
	}
	s.Collection.Mutate(id, content)
	s.persistHistory(id)
	return s.sync.Persist()
}

// ClearHistory discards the document's history. Irreversible.
func (s *Service) ClearHistory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.History.Clear(id)
	if err := s.Index.RemoveDocument(id); err != nil {
		s.warn(err, "remove document from history index")
	}
	return s.History.Save(s.store)
}

// ExportHistory renders the document's history as a text blob.
func (s *Service) ExportHistory(id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := fmt.Sprintf("document %d", id)
	if doc := s.Collection.Get(id); doc != nil {
		name = markup.DisplayTitle(doc.DisplayName)
	}
	return s.History.Export(id, name)
}

// SearchHistory finds past snapshots matching the query. docID 0 searches
// every document.
func (s *Service) SearchHistory(query string, docID int64, limit int) ([]search.Result, error) {
	return s.Index.Search(query, &search.Options{DocID: docID, Limit: limit})
}

// Close persists the session one final time and releases the stores.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync.Persist(); err != nil {
		s.warn(err, "persist session on close")
	}
	if err := s.History.Save(s.store); err != nil {
		s.warn(err, "persist history on close")
	}
	if err := s.Index.Close(); err != nil {
		s.warn(err, "close history index")
	}
	return s.store.Close()
}

// persistHistory saves the history map and refreshes the document's search
// index rows. Index failures are warnings: the index is derived data.
func (s *Service) persistHistory(docID int64) {
	if err := s.History.Save(s.store); err != nil {
		s.warn(err, "persist history")
	}
	s.reindex(docID)
}

func (s *Service) reindex(docID int64) {
	if err := s.Index.IndexDocument(docID, s.History.Entries(docID)); err != nil {
		s.warn(err, "index history")
	}
}

func (s *Service) warn(err error, msg string) {
	if s.logger != nil && err != nil {
		s.logger.WithError(err).Warn(msg)
	}
}
