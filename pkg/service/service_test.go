package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/notepad/pkg/hostsvc"
)

// fakeHost is an in-memory Services implementation with scriptable dialogs.
type fakeHost struct {
	files      map[string]string
	openResult []string
	saveResult string
	cancelled  bool
	writeErr   error
	onWrite    func() // runs at the start of WriteFile
	registered []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{files: map[string]string{}}
}

func (h *fakeHost) OpenDialog() ([]string, error) {
	if h.cancelled {
		return nil, hostsvc.ErrCancelled
	}
	return h.openResult, nil
}

func (h *fakeHost) SaveDialog() (string, error) {
	if h.cancelled {
		return "", hostsvc.ErrCancelled
	}
	return h.saveResult, nil
}

func (h *fakeHost) ReadFile(path string) (string, error) {
	content, ok := h.files[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", hostsvc.ErrFileNotFound, path)
	}
	return content, nil
}

func (h *fakeHost) WriteFile(path, content string) error {
	if h.onWrite != nil {
		h.onWrite()
	}
	if h.writeErr != nil {
		return h.writeErr
	}
	h.files[path] = content
	return nil
}

func (h *fakeHost) RevealInFileManager(path string) error { return nil }
func (h *fakeHost) RegisterRecentDocument(path string)    { h.registered = append(h.registered, path) }
func (h *fakeHost) ClearRecentDocuments()                 {}

func newTestService(t *testing.T, host hostsvc.Services) *Service {
	t.Helper()
	svc, err := New(&Config{DataDir: t.TempDir()}, host, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestNewServiceStartsWithBlankTab(t *testing.T) {
	svc := newTestService(t, newFakeHost())

	require.Equal(t, 1, svc.Collection.Len())
	doc := svc.Collection.Active()
	require.NotNil(t, doc)
	assert.Equal(t, "Untitled", doc.DisplayName)
	assert.Equal(t, "", doc.Content)
	assert.False(t, doc.Modified)
}

func TestSessionSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	host := newFakeHost()

	svc, err := New(&Config{DataDir: dir}, host, nil, nil)
	require.NoError(t, err)

	doc, err := svc.NewTab("Notes", "remember this", "")
	require.NoError(t, err)
	require.NoError(t, svc.SetContent(doc.ID, "remember this, edited"))
	require.NoError(t, svc.Close())

	svc, err = New(&Config{DataDir: dir}, host, nil, nil)
	require.NoError(t, err)
	defer svc.Close()

	got := svc.Collection.Get(doc.ID)
	require.NotNil(t, got)
	assert.Equal(t, "remember this, edited", got.Content)
	assert.True(t, got.Modified)
	assert.Equal(t, doc.ID, svc.Collection.ActiveID())
}

func TestOpenPath(t *testing.T) {
	host := newFakeHost()
	host.files["/notes/a.txt"] = "file content"
	svc := newTestService(t, host)

	doc, err := svc.OpenPath("/notes/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", doc.DisplayName)
	assert.Equal(t, "file content", doc.Content)
	assert.False(t, doc.Modified)

	recent := svc.Registry.Recent()
	require.NotEmpty(t, recent)
	assert.Equal(t, "/notes/a.txt", recent[0].Path)
	assert.Equal(t, []string{"/notes/a.txt"}, host.registered)
}

func TestOpenPathMissingFile(t *testing.T) {
	svc := newTestService(t, newFakeHost())

	before := svc.Collection.Len()
	_, err := svc.OpenPath("/missing.txt")
	assert.ErrorIs(t, err, hostsvc.ErrFileNotFound)
	assert.Equal(t, before, svc.Collection.Len())
}

func TestSaveNewDocumentViaDialog(t *testing.T) {
	host := newFakeHost()
	host.saveResult = "/tmp/a.txt"
	svc := newTestService(t, host)

	doc := svc.Collection.Active()
	require.NoError(t, svc.SetContent(doc.ID, "hello"))
	require.True(t, doc.Modified)

	require.NoError(t, svc.Save(doc.ID))

	assert.Equal(t, "hello", host.files["/tmp/a.txt"])
	assert.Equal(t, "/tmp/a.txt", doc.FilePath)
	assert.Equal(t, "a.txt", doc.DisplayName)
	assert.Equal(t, "hello", doc.BaselineContent)
	assert.False(t, doc.Modified)

	// The saved content is snapshotted and the file becomes most recent.
	assert.Equal(t, 1, svc.History.Len(doc.ID))
	recent := svc.Registry.Recent()
	require.NotEmpty(t, recent)
	assert.Equal(t, "/tmp/a.txt", recent[0].Path)
}

func TestSaveCancelledDialogHasNoSideEffects(t *testing.T) {
	host := newFakeHost()
	host.cancelled = true
	svc := newTestService(t, host)

	doc := svc.Collection.Active()
	require.NoError(t, svc.SetContent(doc.ID, "unsaved"))

	err := svc.Save(doc.ID)
	assert.ErrorIs(t, err, hostsvc.ErrCancelled)

	assert.True(t, doc.Modified)
	assert.Equal(t, "", doc.FilePath)
	assert.Empty(t, host.files)
	assert.Equal(t, 0, svc.History.Len(doc.ID))
	assert.Empty(t, svc.Registry.Recent())
}

func TestSaveFailedWriteLeavesStateUntouched(t *testing.T) {
	host := newFakeHost()
	host.saveResult = "/tmp/a.txt"
	host.writeErr = errors.New("disk full")
	svc := newTestService(t, host)

	doc := svc.Collection.Active()
	require.NoError(t, svc.SetContent(doc.ID, "hello"))

	err := svc.Save(doc.ID)
	require.Error(t, err)

	assert.True(t, doc.Modified)
	assert.Equal(t, "", doc.FilePath)
	assert.Equal(t, "", doc.BaselineContent)
	assert.Equal(t, 0, svc.History.Len(doc.ID))
}

func TestSaveAsAlwaysPrompts(t *testing.T) {
	host := newFakeHost()
	host.files["/a.txt"] = "content"
	host.saveResult = "/copy.txt"
	svc := newTestService(t, host)

	doc, err := svc.OpenPath("/a.txt")
	require.NoError(t, err)

	require.NoError(t, svc.SaveAs(doc.ID))
	assert.Equal(t, "/copy.txt", doc.FilePath)
	assert.Equal(t, "copy.txt", doc.DisplayName)
	assert.Equal(t, "content", host.files["/copy.txt"])
}

func TestSaveConcurrentEditStaysModified(t *testing.T) {
	host := newFakeHost()
	svc := newTestService(t, host)

	doc := svc.Collection.Active()
	require.NoError(t, svc.SetContent(doc.ID, "original"))

	// An edit lands while the write is in flight. The lock is released
	// around host I/O, so this must not be marked clean.
	host.onWrite = func() {
		require.NoError(t, svc.SetContent(doc.ID, "edited during save"))
	}

	require.NoError(t, svc.SaveTo(doc.ID, "/a.txt"))

	assert.Equal(t, "original", host.files["/a.txt"])
	assert.Equal(t, "edited during save", doc.Content)
	assert.Equal(t, "original", doc.BaselineContent)
	assert.True(t, doc.Modified)
}

func TestSaveInFlightGuard(t *testing.T) {
	host := newFakeHost()
	svc := newTestService(t, host)

	docA := svc.Collection.Active()
	docB, err := svc.NewTab("Other", "other content", "")
	require.NoError(t, err)
	require.NoError(t, svc.SetContent(docA.ID, "slow save"))

	entered := make(chan struct{})
	release := make(chan struct{})
	var first int32
	host.onWrite = func() {
		if atomic.CompareAndSwapInt32(&first, 0, 1) {
			close(entered)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() { done <- svc.SaveTo(docA.ID, "/slow.txt") }()
	<-entered

	// A second save on the same document is rejected while one is pending.
	err = svc.SaveTo(docA.ID, "/elsewhere.txt")
	assert.ErrorIs(t, err, ErrSaveInFlight)

	// Other documents are unaffected.
	require.NoError(t, svc.SaveTo(docB.ID, "/other.txt"))
	assert.Equal(t, "other content", host.files["/other.txt"])

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, "slow save", host.files["/slow.txt"])
	assert.False(t, docA.Modified)
}

func TestSaveToExplicitPath(t *testing.T) {
	host := newFakeHost()
	svc := newTestService(t, host)

	doc := svc.Collection.Active()
	require.NoError(t, svc.SetContent(doc.ID, "explicit"))

	require.NoError(t, svc.SaveTo(doc.ID, "/out/copy.txt"))
	assert.Equal(t, "explicit", host.files["/out/copy.txt"])
	assert.Equal(t, "/out/copy.txt", doc.FilePath)
	assert.Equal(t, "copy.txt", doc.DisplayName)
	assert.False(t, doc.Modified)
}

func TestCloseModifiedTabConfirms(t *testing.T) {
	host := newFakeHost()
	approve := false
	svc, err := New(&Config{DataDir: t.TempDir()}, host, func(string) bool { return approve }, nil)
	require.NoError(t, err)
	defer svc.Close()

	doc, err := svc.NewTab("", "", "")
	require.NoError(t, err)
	require.NoError(t, svc.SetContent(doc.ID, "dirty"))

	closed, err := svc.CloseTab(doc.ID, false)
	require.NoError(t, err)
	assert.False(t, closed)
	assert.NotNil(t, svc.Collection.Get(doc.ID))

	closed, err = svc.CloseTab(doc.ID, true) // force skips the prompt
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Nil(t, svc.Collection.Get(doc.ID))
}

func TestFindWrapsAround(t *testing.T) {
	svc := newTestService(t, newFakeHost())
	doc := svc.Collection.Active()
	require.NoError(t, svc.SetContent(doc.ID, "alpha beta alpha"))

	pos, found := svc.Find(doc.ID, "alpha", 0)
	require.True(t, found)
	assert.Equal(t, 0, pos)

	pos, found = svc.Find(doc.ID, "alpha", 1)
	require.True(t, found)
	assert.Equal(t, 11, pos)

	// Past the last hit the search wraps to the top.
	pos, found = svc.Find(doc.ID, "alpha", 12)
	require.True(t, found)
	assert.Equal(t, 0, pos)

	_, found = svc.Find(doc.ID, "gamma", 0)
	assert.False(t, found)
}

func TestFindSearchesPlainProjection(t *testing.T) {
	svc := newTestService(t, newFakeHost())
	doc := svc.Collection.Active()
	require.NoError(t, svc.SetContent(doc.ID, "<div>needle in markup</div>"))

	pos, found := svc.Find(doc.ID, "needle", 0)
	require.True(t, found)
	assert.Equal(t, 0, pos)
}

func TestReplaceAll(t *testing.T) {
	svc := newTestService(t, newFakeHost())
	doc := svc.Collection.Active()
	require.NoError(t, svc.SetContent(doc.ID, "teh cat and teh dog"))

	n, err := svc.ReplaceAll(doc.ID, "teh", "the")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "the cat and the dog", doc.Content)

	// No matches leaves the document untouched.
	content := doc.Content
	n, err = svc.ReplaceAll(doc.ID, "zzz", "x")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, content, doc.Content)
}

func TestSweepHistory(t *testing.T) {
	svc := newTestService(t, newFakeHost())

	blank := svc.Collection.Active()
	doc, err := svc.NewTab("Notes", "first draft", "")
	require.NoError(t, err)
	require.Equal(t, 1, svc.History.Len(doc.ID))

	require.NoError(t, svc.SetContent(doc.ID, "second draft"))
	svc.SweepHistory()
	assert.Equal(t, 2, svc.History.Len(doc.ID))

	// An unchanged document and a blank one record nothing.
	svc.SweepHistory()
	assert.Equal(t, 2, svc.History.Len(doc.ID))
	assert.Equal(t, 0, svc.History.Len(blank.ID))
}

func TestRestoreHistoryRoundTrip(t *testing.T) {
	svc := newTestService(t, newFakeHost())

	doc, err := svc.NewTab("Notes", "version one", "")
	require.NoError(t, err)
	require.NoError(t, svc.SetContent(doc.ID, "version two"))
	svc.SweepHistory()

	// Newest entry is "version two" (index 0); restore the older snapshot.
	require.NoError(t, svc.RestoreHistory(doc.ID, 1))
	assert.Equal(t, "version one", doc.Content)

	// The restore captured "version two", so restoring index 0 undoes it.
	require.NoError(t, svc.RestoreHistory(doc.ID, 0))
	assert.Equal(t, "version two", doc.Content)
}

func TestSearchHistory(t *testing.T) {
	svc := newTestService(t, newFakeHost())

	doc, err := svc.NewTab("Notes", "the quarterly budget numbers", "")
	require.NoError(t, err)

	results, err := svc.SearchHistory("budget", 0, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, doc.ID, results[0].DocID)
}

func TestClearHistoryRemovesIndex(t *testing.T) {
	svc := newTestService(t, newFakeHost())

	doc, err := svc.NewTab("Notes", "searchable content", "")
	require.NoError(t, err)

	require.NoError(t, svc.ClearHistory(doc.ID))
	assert.Equal(t, 0, svc.History.Len(doc.ID))

	results, err := svc.SearchHistory("searchable", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExportHistory(t *testing.T) {
	svc := newTestService(t, newFakeHost())

	doc, err := svc.NewTab("meeting-notes.txt", "agenda items", "")
	require.NoError(t, err)

	text, err := svc.ExportHistory(doc.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "History of: Meeting Notes")
	assert.Contains(t, text, "agenda items")
}

func TestRevealUnsavedDocument(t *testing.T) {
	svc := newTestService(t, newFakeHost())

	err := svc.Reveal(svc.Collection.ActiveID())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save the file first")
}

func TestPinDocument(t *testing.T) {
	host := newFakeHost()
	host.files["/a.txt"] = "x"
	svc := newTestService(t, host)

	doc, err := svc.OpenPath("/a.txt")
	require.NoError(t, err)

	require.NoError(t, svc.PinDocument(doc.ID))
	assert.True(t, svc.Registry.IsPinned("/a.txt"))

	// Unsaved documents cannot be pinned.
	blank, err := svc.NewTab("", "", "")
	require.NoError(t, err)
	assert.Error(t, svc.PinDocument(blank.ID))
}

func TestLegacyStateImport(t *testing.T) {
	dir := t.TempDir()
	session := `{"documents":[{"id":1,"display_name":"Old","content":"from the json era","baseline_content":"from the json era","is_modified":false}],"active_id":1,"next_id":2}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte(session), 0644))

	svc, err := New(&Config{DataDir: dir}, newFakeHost(), nil, nil)
	require.NoError(t, err)
	defer svc.Close()

	doc := svc.Collection.Get(1)
	require.NotNil(t, doc)
	assert.Equal(t, "Old", doc.DisplayName)
	assert.Equal(t, "from the json era", doc.Content)

	// The legacy file is retired so it never imports twice.
	_, err = os.Stat(filepath.Join(dir, "session.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "session.json.imported"))
	assert.NoError(t, err)
}
