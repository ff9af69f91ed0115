package history

import (
	"encoding/json"

	"github.com/mfiguera/notepad/pkg/models"
	"github.com/mfiguera/notepad/pkg/store"
)

// Load reads the history map from the store. A missing, corrupt, or
// unparsable value is treated as no history: the returned log is empty and
// the error describes what was ignored so the caller can log it.
func Load(st *store.Store, max int) (*Log, error) {
	l := NewLog(max)

	data, err := st.Get(store.KeyHistory)
	if err != nil || data == nil {
		return l, err
	}

	var entries map[int64][]models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return l, err
	}

	for docID, list := range entries {
		if len(list) > l.max {
			list = list[:l.max]
		}
		l.entries[docID] = list
	}
	return l, nil
}

// Save writes the full history map to the store. Safe to call arbitrarily
// often; last write wins.
func (l *Log) Save(st *store.Store) error {
	data, err := json.Marshal(l.entries)
	if err != nil {
		return err
	}
	return st.Put(store.KeyHistory, data)
}
