// Package autosave runs the periodic persistence policies: a tight cadence
// for the cheap session snapshot and a coarser one for the full-content
// history sweep.
package autosave

import (
	"context"
	"time"
)

// Default cadences. The session save is cheap (small metadata) so it runs
// tighter; the history sweep duplicates full content so it runs coarser.
const (
	DefaultSessionInterval = 60 * time.Second
	DefaultHistoryInterval = 30 * time.Second
)

// Scheduler drives two independent periodic actions until its context is
// cancelled. Both tickers stop on shutdown so nothing writes to a torn-down
// store.
type Scheduler struct {
	// SaveSession persists the session snapshot. Called every SessionInterval.
	SaveSession func()
	// SweepHistory appends a history snapshot for every dirty document.
	// Called every HistoryInterval.
	SweepHistory func()

	SessionInterval time.Duration
	HistoryInterval time.Duration

	// NewTicker creates a ticker channel and its stop function. If nil,
	// time.NewTicker is used. Inject a custom implementation for
	// deterministic testing without real timers.
	NewTicker func(d time.Duration) (tick <-chan time.Time, stop func())
}

// Run blocks until ctx is cancelled, invoking the two actions at their
// configured cadences.
func (s *Scheduler) Run(ctx context.Context) {
	sessionInterval := s.SessionInterval
	if sessionInterval <= 0 {
		sessionInterval = DefaultSessionInterval
	}
	historyInterval := s.HistoryInterval
	if historyInterval <= 0 {
		historyInterval = DefaultHistoryInterval
	}

	newTicker := s.NewTicker
	if newTicker == nil {
		newTicker = defaultNewTicker
	}

	sessionCh, stopSession := newTicker(sessionInterval)
	defer stopSession()
	historyCh, stopHistory := newTicker(historyInterval)
	defer stopHistory()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sessionCh:
			if s.SaveSession != nil {
				s.SaveSession()
			}
		case <-historyCh:
			if s.SweepHistory != nil {
				s.SweepHistory()
			}
		}
	}
}

// defaultNewTicker wraps time.NewTicker to match the NewTicker signature.
func defaultNewTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}
