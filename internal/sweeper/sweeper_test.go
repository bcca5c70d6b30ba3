// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package sweeper_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksarapress/aksara/internal/sweeper"
)

// recordingStore captures every ExpireLapsed call and replays scripted
// results, signalling each pass on a channel.
type recordingStore struct {
	mu      sync.Mutex
	calls   []time.Time
	results []passResult
	passed  chan struct{}
}

type passResult struct {
	reverted []string
	err      error
}

func newRecordingStore(results ...passResult) *recordingStore {
	return &recordingStore{
		results: results,
		passed:  make(chan struct{}, 16),
	}
}

func (s *recordingStore) ExpireLapsed(_ context.Context, now time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := len(s.calls)
	s.calls = append(s.calls, now)
	s.passed <- struct{}{}

	if call < len(s.results) {
		return s.results[call].reverted, s.results[call].err
	}
	return nil, nil
}

func (s *recordingStore) callTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.calls...)
}

func waitForPasses(t *testing.T, store *recordingStore, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case <-store.passed:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for sweep pass %d", i+1)
		}
	}
}

/*
TestSweeper_PassesClockToStore verifies each pass queries the store with the
injected clock's time, not the wall clock.
*/
func TestSweeper_PassesClockToStore(t *testing.T) {
	fixedNow := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	store := newRecordingStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := sweeper.New(time.Millisecond, func() time.Time { return fixedNow }, store, logger)
	go s.Run(ctx)

	waitForPasses(t, store, 2)
	cancel()

	for _, callTime := range store.callTimes()[:2] {
		assert.Equal(t, fixedNow, callTime)
	}
}

/*
TestSweeper_ContinuesAfterError verifies a failed pass never stops the loop.
*/
func TestSweeper_ContinuesAfterError(t *testing.T) {
	store := newRecordingStore(
		passResult{err: errors.New("connection reset")},
		passResult{reverted: []string{"chapter-1"}},
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := sweeper.New(time.Millisecond, nil, store, logger)
	go s.Run(ctx)

	waitForPasses(t, store, 3)
	cancel()

	require.GreaterOrEqual(t, len(store.callTimes()), 3)
}

/*
TestSweeper_StopsOnCancel verifies Run returns once the context is done.
*/
func TestSweeper_StopsOnCancel(t *testing.T) {
	store := newRecordingStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	s := sweeper.New(time.Millisecond, nil, store, logger)
	go func() {
		s.Run(ctx)
		close(done)
	}()

	waitForPasses(t, store, 1)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
