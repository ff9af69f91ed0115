package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "data", "notepad.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Put("k", []byte("v1")))
	got, err := st.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// Last write wins.
	require.NoError(t, st.Put("k", []byte("v2")))
	got, err = st.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestGetAbsentKey(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "notepad.db"))
	require.NoError(t, err)
	defer st.Close()

	got, err := st.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "notepad.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Put("k", []byte("v")))
	require.NoError(t, st.Delete("k"))

	got, err := st.Get("k")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is fine.
	require.NoError(t, st.Delete("k"))
}

func TestKeysAreIndependent(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "notepad.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Put(KeySession, []byte("session data")))
	require.NoError(t, st.Put(KeyHistory, []byte("history data")))
	require.NoError(t, st.Delete(KeySession))

	got, err := st.Get(KeyHistory)
	require.NoError(t, err)
	assert.Equal(t, []byte("history data"), got)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notepad.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Put("k", []byte("survives")))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("survives"), got)
}
