package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecompute(t *testing.T) {
	doc := &Document{Content: "hello", BaselineContent: "hello"}
	doc.Recompute()
	assert.False(t, doc.Modified)

	doc.Content = "hello!"
	doc.Recompute()
	assert.True(t, doc.Modified)

	// Typing back to the baseline clears the flag again.
	doc.Content = "hello"
	doc.Recompute()
	assert.False(t, doc.Modified)
}

func TestNewFileRef(t *testing.T) {
	ref := NewFileRef("/home/u/notes/meeting-notes.txt")
	assert.Equal(t, "/home/u/notes/meeting-notes.txt", ref.Path)
	assert.Equal(t, "meeting-notes.txt", ref.Name)
	assert.False(t, ref.Timestamp.IsZero())
}
