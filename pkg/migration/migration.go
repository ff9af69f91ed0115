// Package migration imports editor state left behind by older releases,
// which kept the session and history as loose JSON files in the data
// directory instead of the key-value store.
package migration

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mfiguera/notepad/pkg/models"
	"github.com/mfiguera/notepad/pkg/store"
)

// Legacy file names, relative to the data directory.
const (
	LegacySessionFile = "session.json"
	LegacyHistoryFile = "history.json"
)

// Options controls what Migrate touches.
type Options struct {
	// DryRun reports what would be imported without writing anything.
	DryRun bool
	// Keep leaves the legacy files in place after a successful import.
	// By default they are renamed with an .imported suffix.
	Keep bool
}

// Report summarizes an import run.
type Report struct {
	SessionImported bool
	HistoryDocs     int
	Skipped         []string
}

// Migrate imports legacy JSON state files from dataDir into the store.
// Files that are missing or unreadable are skipped and listed in the
// report; existing store keys are never overwritten.
func Migrate(dataDir string, st *store.Store, options Options, output io.Writer) (*Report, error) {
	if output == nil {
		output = os.Stdout
	}
	report := &Report{}

	if err := migrateSession(dataDir, st, options, report, output); err != nil {
		return report, err
	}
	if err := migrateHistory(dataDir, st, options, report, output); err != nil {
		return report, err
	}
	return report, nil
}

func migrateSession(dataDir string, st *store.Store, options Options, report *Report, output io.Writer) error {
	path := filepath.Join(dataDir, LegacySessionFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		report.Skipped = append(report.Skipped, path)
		fmt.Fprintf(output, "Skipping %s: %v\n", path, err)
		return nil
	}

	existing, err := st.Get(store.KeySession)
	if err != nil {
		return err
	}
	if existing != nil {
		report.Skipped = append(report.Skipped, path)
		fmt.Fprintf(output, "Skipping %s: a session already exists in the store\n", path)
		return nil
	}

	if !options.DryRun {
		if err := st.Put(store.KeySession, data); err != nil {
			return fmt.Errorf("failed to import session: %w", err)
		}
		if err := retireLegacyFile(path, options); err != nil {
			return err
		}
	}
	report.SessionImported = true
	fmt.Fprintf(output, "Imported session with %d document(s)\n", len(sess.Documents))
	return nil
}

func migrateHistory(dataDir string, st *store.Store, options Options, report *Report, output io.Writer) error {
	path := filepath.Join(dataDir, LegacyHistoryFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy history: %w", err)
	}

	var entries map[int64][]models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		report.Skipped = append(report.Skipped, path)
		fmt.Fprintf(output, "Skipping %s: %v\n", path, err)
		return nil
	}

	existing, err := st.Get(store.KeyHistory)
	if err != nil {
		return err
	}
	if existing != nil {
		report.Skipped = append(report.Skipped, path)
		fmt.Fprintf(output, "Skipping %s: history already exists in the store\n", path)
		return nil
	}

	if !options.DryRun {
		if err := st.Put(store.KeyHistory, data); err != nil {
			return fmt.Errorf("failed to import history: %w", err)
		}
		if err := retireLegacyFile(path, options); err != nil {
			return err
		}
	}
	report.HistoryDocs = len(entries)
	fmt.Fprintf(output, "Imported history for %d document(s)\n", len(entries))
	return nil
}

func retireLegacyFile(path string, options Options) error {
	if options.Keep {
		return nil
	}
	if err := os.Rename(path, path+".imported"); err != nil {
		return fmt.Errorf("failed to retire %s: %w", path, err)
	}
	return nil
}
