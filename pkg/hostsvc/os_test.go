package hostsvc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	host := &OS{}
	path := filepath.Join(t.TempDir(), "note.txt")

	require.NoError(t, host.WriteFile(path, "hello"))
	got, err := host.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestReadMissingFile(t *testing.T) {
	host := &OS{}

	_, err := host.ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestNilPromptsCancel(t *testing.T) {
	host := &OS{}

	_, err := host.OpenDialog()
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = host.SaveDialog()
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestPromptsAreForwarded(t *testing.T) {
	host := &OS{
		OpenPrompt: func() ([]string, error) { return []string{"/a.txt"}, nil },
		SavePrompt: func() (string, error) { return "/b.txt", nil },
	}

	paths, err := host.OpenDialog()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a.txt"}, paths)

	path, err := host.SaveDialog()
	require.NoError(t, err)
	assert.Equal(t, "/b.txt", path)
}
