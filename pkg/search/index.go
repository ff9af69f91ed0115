// Package search maintains a full-text index over history snapshots so past
// versions of a document can be found by content.
package search

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mfiguera/notepad/pkg/models"
)

// Index manages the history search index
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex creates a new history search index
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS entries_meta (
		doc_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		captured_at TIMESTAMP,
		file_name TEXT,
		content TEXT,
		PRIMARY KEY (doc_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_meta_doc ON entries_meta(doc_id);
	`

	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	if idx.useFTS {
		// Only content is matchable; file_name rides along for display.
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			doc_id UNINDEXED,
			position UNINDEXED,
			file_name UNINDEXED,
			content,
			tokenize = 'porter unicode61'
		);
		`

		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// If FTS creation fails, disable FTS and continue
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if the FTS5 module is available
func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}

	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// IndexDocument replaces the indexed rows for a document with the given
// history entries (newest first, position 0 = newest).
func (idx *Index) IndexDocument(docID int64, entries []models.HistoryEntry) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err = tx.Exec("DELETE FROM entries_fts WHERE doc_id = ?", docID); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM entries_meta WHERE doc_id = ?", docID); err != nil {
		return err
	}

	for pos, entry := range entries {
		if idx.useFTS {
			_, err = tx.Exec(`
				INSERT INTO entries_fts (doc_id, position, file_name, content)
				VALUES (?, ?, ?, ?)
			`, docID, pos, entry.FileName, entry.Content)
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(`
			INSERT INTO entries_meta (doc_id, position, captured_at, file_name, content)
			VALUES (?, ?, ?, ?, ?)
		`, docID, pos, entry.Timestamp, entry.FileName, entry.Content)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RemoveDocument removes every indexed entry for the document.
func (idx *Index) RemoveDocument(docID int64) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err = tx.Exec("DELETE FROM entries_fts WHERE doc_id = ?", docID); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM entries_meta WHERE doc_id = ?", docID); err != nil {
		return err
	}

	return tx.Commit()
}

// Result is one matching history snapshot.
type Result struct {
	DocID      int64
	Position   int
	CapturedAt time.Time
	FileName   string
	Snippet    string
}

// Options for searching
type Options struct {
	DocID int64 // 0 searches all documents
	Limit int
}

// Search finds history snapshots matching the query.
func (idx *Index) Search(query string, opts *Options) ([]Result, error) {
	if opts == nil {
		opts = &Options{Limit: 50}
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	if idx.useFTS {
		return idx.searchWithFTS(query, opts)
	}
	return idx.searchWithoutFTS(query, opts)
}

// searchWithFTS performs search using FTS5
func (idx *Index) searchWithFTS(query string, opts *Options) ([]Result, error) {
	var conditions []string
	var args []any

	if opts.DocID != 0 {
		conditions = append(conditions, "m.doc_id = ?")
		args = append(args, opts.DocID)
	}
	conditions = append(conditions, "entries_fts MATCH ?")
	args = append(args, query)

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	searchQuery := fmt.Sprintf(`
		SELECT
			m.doc_id, m.position, m.captured_at, m.file_name,
			snippet(entries_fts, 3, '<match>', '</match>', '...', 32) as snippet
		FROM entries_fts f
		JOIN entries_meta m ON f.doc_id = m.doc_id AND f.position = m.position
		%s
		ORDER BY rank
		LIMIT ?
	`, whereClause)

	args = append(args, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResults(rows, true)
}

// searchWithoutFTS performs search using LIKE queries on the metadata table
func (idx *Index) searchWithoutFTS(query string, opts *Options) ([]Result, error) {
	var conditions []string
	var args []any

	if opts.DocID != 0 {
		conditions = append(conditions, "doc_id = ?")
		args = append(args, opts.DocID)
	}

	searchPattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	conditions = append(conditions, "content LIKE ?")
	args = append(args, searchPattern)

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	searchQuery := fmt.Sprintf(`
		SELECT doc_id, position, captured_at, file_name, content
		FROM entries_meta
		%s
		ORDER BY captured_at DESC
		LIMIT ?
	`, whereClause)

	args = append(args, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResults(rows, false)
}

func scanResults(rows *sql.Rows, fromFTS bool) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.DocID, &r.Position, &r.CapturedAt, &r.FileName, &r.Snippet); err != nil {
			return nil, err
		}
		if !fromFTS {
			r.Snippet = strings.ReplaceAll(r.Snippet, "\n", " ")
			if len(r.Snippet) > 100 {
				r.Snippet = r.Snippet[:100] + "..."
			}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}
