package registry

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mfiguera/notepad/pkg/models"
)

// loadRefs reads a JSON list of file refs. Any failure yields an empty list:
// a corrupt registry file is treated as absence of data.
func loadRefs(path string) []models.FileRef {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var refs []models.FileRef
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil
	}
	return refs
}

// saveRefs writes a JSON list of file refs using a temp file + rename so a
// crash mid-write never leaves a torn file.
func saveRefs(path string, refs []models.FileRef) error {
	if refs == nil {
		refs = []models.FileRef{}
	}
	data, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}
