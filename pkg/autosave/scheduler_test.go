package autosave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunFiresBothCadences(t *testing.T) {
	sessionTick := make(chan time.Time)
	historyTick := make(chan time.Time)
	stops := 0

	s := &Scheduler{
		SessionInterval: time.Minute,
		HistoryInterval: 30 * time.Second,
		NewTicker: func(d time.Duration) (<-chan time.Time, func()) {
			if d == time.Minute {
				return sessionTick, func() { stops++ }
			}
			return historyTick, func() { stops++ }
		},
	}

	sessionCalls := make(chan struct{}, 10)
	historyCalls := make(chan struct{}, 10)
	s.SaveSession = func() { sessionCalls <- struct{}{} }
	s.SweepHistory = func() { historyCalls <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	sessionTick <- time.Now()
	<-sessionCalls
	historyTick <- time.Now()
	historyTick <- time.Now()
	<-historyCalls
	<-historyCalls

	cancel()
	<-done
	assert.Equal(t, 2, stops)
	assert.Empty(t, sessionCalls)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := &Scheduler{
		NewTicker: func(d time.Duration) (<-chan time.Time, func()) {
			return make(chan time.Time), func() {}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestRunNilActionsDoNotPanic(t *testing.T) {
	tick := make(chan time.Time)
	s := &Scheduler{
		NewTicker: func(d time.Duration) (<-chan time.Time, func()) {
			return tick, func() {}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	tick <- time.Now()
	tick <- time.Now()
	cancel()
	<-done
}
