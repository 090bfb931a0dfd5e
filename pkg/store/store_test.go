package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFetch returns results in order and counts calls.
type countingFetch struct {
	calls   atomic.Int32
	results []error
	gate    chan struct{}
}

func (f *countingFetch) fetch(ctx context.Context) (int, error) {
	n := int(f.calls.Add(1))
	if f.gate != nil {
		<-f.gate
	}
	if n-1 < len(f.results) && f.results[n-1] != nil {
		return 0, f.results[n-1]
	}
	return n, nil
}

func TestFetchStoreGetMemoizesSuccess(t *testing.T) {
	f := &countingFetch{}
	s := NewFetchStore("test", f.fetch)
	ctx := context.Background()

	v, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestFetchStoreGetFailureIsNotMemoized(t *testing.T) {
	f := &countingFetch{results: []error{errors.New("offline")}}
	s := NewFetchStore("test", f.fetch)
	ctx := context.Background()

	_, err := s.Get(ctx)
	require.Error(t, err)

	v, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestFetchStoreRefreshRoundTrip(t *testing.T) {
	boom := errors.New("boom")
	f := &countingFetch{results: []error{nil, nil, boom}}
	s := NewFetchStore("test", f.fetch)
	ctx := context.Background()

	_, err := s.Get(ctx)
	require.NoError(t, err)

	// Refresh success replaces the cached value and Get serves it.
	v, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	v, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), f.calls.Load())

	// Refresh failure is kept and Get reflects it without fetching.
	_, err = s.Refresh(ctx)
	require.ErrorIs(t, err, boom)
	_, err = s.Get(ctx)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(3), f.calls.Load())

	// A further refresh always fetches.
	v, err = s.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, int32(4), f.calls.Load())
}

func TestFetchStoreCoalescesConcurrentCallers(t *testing.T) {
	f := &countingFetch{gate: make(chan struct{})}
	s := NewFetchStore("test", f.fetch)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				results[i], _ = s.Get(ctx)
			} else {
				results[i], _ = s.Refresh(ctx)
			}
		}(i)
	}

	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	// Give the remaining callers time to join the in-flight fetch.
	time.Sleep(20 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	for _, r := range results {
		assert.Equal(t, 1, r)
	}
}

func TestFetchStoreRefreshJoiningGetMemoizesOnlyThatFailure(t *testing.T) {
	boom := errors.New("boom")
	later := errors.New("later")
	f := &countingFetch{results: []error{boom, later}, gate: make(chan struct{})}
	s := NewFetchStore("test", f.fetch)
	ctx := context.Background()

	getDone := make(chan error, 1)
	go func() {
		_, err := s.Get(ctx)
		getDone <- err
	}()
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)

	refreshDone := make(chan error, 1)
	go func() {
		_, err := s.Refresh(ctx)
		refreshDone <- err
	}()
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.open != nil && s.open.refresh
	}, time.Second, time.Millisecond)

	close(f.gate)
	assert.ErrorIs(t, <-getDone, boom)
	assert.ErrorIs(t, <-refreshDone, boom)

	// The joined refresh keeps the failure.
	_, err := s.Get(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), f.calls.Load())

	// The refresh intent ended with its flight: a later failed Get is
	// not memoized.
	s.Invalidate()
	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, later)
	v, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, int32(3), f.calls.Load())
}

func TestFetchStoreAbandonedCallerDoesNotCancelFetch(t *testing.T) {
	f := &countingFetch{gate: make(chan struct{})}
	s := NewFetchStore("test", f.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Get(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(f.gate)
	require.Eventually(t, func() bool {
		v, err := s.Get(context.Background())
		return err == nil && v == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestFetchStoreInvalidate(t *testing.T) {
	f := &countingFetch{}
	s := NewFetchStore("test", f.fetch)
	ctx := context.Background()

	_, _ = s.Get(ctx)
	s.Invalidate()
	v, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestStaticStore(t *testing.T) {
	s := NewStaticStore([]string{"a", "b"})

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}
