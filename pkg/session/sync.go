package session

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mfiguera/notepad/pkg/models"
	"github.com/mfiguera/notepad/pkg/store"
)

// Synchronizer persists the document collection to the session store and
// restores it at startup.
type Synchronizer struct {
	store  *store.Store
	coll   *Collection
	logger *logrus.Logger
}

// NewSynchronizer binds a collection to the session store. logger may be nil.
func NewSynchronizer(st *store.Store, coll *Collection, logger *logrus.Logger) *Synchronizer {
	return &Synchronizer{store: st, coll: coll, logger: logger}
}

// Persist serializes the full collection to the session store. Safe to call
// arbitrarily often; last write wins.
func (s *Synchronizer) Persist() error {
	data, err := json.Marshal(s.coll.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.store.Put(store.KeySession, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Restore loads the persisted session into the collection and reports
// whether restoration occurred. A missing, empty, or corrupt snapshot is
// treated as no session (fail open): the method returns false and the
// caller creates one default blank document. Only store-level read failures
// are returned as errors.
func (s *Synchronizer) Restore() (bool, error) {
	data, err := s.store.Get(store.KeySession)
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	if len(data) == 0 {
		return false, nil
	}

	var snap models.Session
	if err := json.Unmarshal(data, &snap); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("session snapshot unreadable, starting fresh")
		}
		return false, nil
	}

	// A torn snapshot can decode with null document entries. Drop them; a
	// snapshot with nothing left is treated as no session.
	docs := snap.Documents[:0]
	for _, d := range snap.Documents {
		if d != nil {
			docs = append(docs, d)
		}
	}
	snap.Documents = docs
	if len(snap.Documents) == 0 {
		return false, nil
	}

	s.coll.load(&snap)
	return true, nil
}
