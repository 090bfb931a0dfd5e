package store

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"
)

var fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "zeplin_store_fetch_total",
	Help: "Store fetches by store name and result",
}, []string{"store", "result"})

// flightKey is the only singleflight key: every fetch of a store is the same
// fetch as far as coalescing is concerned.
const flightKey = "fetch"

// FetchFunc loads the value of a FetchStore.
type FetchFunc[T any] func(ctx context.Context) (T, error)

type cachedResult[T any] struct {
	value T
	err   error
}

// flight is the state of the fetch registered under flightKey. refresh is
// set when any caller of that fetch came through Refresh.
type flight struct {
	generation uint64
	refresh    bool
}

// FetchStore is a Store backed by a fetch function.
//
// Successful fetches are memoized. A failure is memoized only when it was
// produced by Refresh; a failed Get leaves the cache empty so the next Get
// tries again. Get and Refresh share a single in-flight fetch.
type FetchStore[T any] struct {
	name   string
	fetch  FetchFunc[T]
	flight singleflight.Group

	mu         sync.Mutex
	cached     *cachedResult[T]
	open       *flight
	generation uint64
}

// NewFetchStore creates a FetchStore. name labels its metrics.
func NewFetchStore[T any](name string, fetch FetchFunc[T]) *FetchStore[T] {
	return &FetchStore[T]{name: name, fetch: fetch}
}

// Get returns the cached value or fetches it.
func (s *FetchStore[T]) Get(ctx context.Context) (T, error) {
	s.mu.Lock()
	if c := s.cached; c != nil {
		s.mu.Unlock()
		return c.value, c.err
	}
	s.mu.Unlock()
	return s.do(ctx, false)
}

// Refresh fetches again, joining a fetch that is already in flight, and
// replaces the cached result with the outcome.
func (s *FetchStore[T]) Refresh(ctx context.Context) (T, error) {
	return s.do(ctx, true)
}

// Invalidate drops the cached result. A fetch in flight finishes but its
// result is not cached.
func (s *FetchStore[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.generation++
}

func (s *FetchStore[T]) do(ctx context.Context, refresh bool) (T, error) {
	// s.open and the singleflight key are opened and closed under s.mu, so
	// a caller always joins the flight whose state it marks.
	s.mu.Lock()
	f := s.open
	if f == nil {
		f = &flight{generation: s.generation}
		s.open = f
	}
	if refresh {
		f.refresh = true
	}
	ch := s.flight.DoChan(flightKey, func() (interface{}, error) {
		// Callers may give up waiting; the shared fetch still completes so
		// that the others get a result.
		value, err := s.fetch(context.WithoutCancel(ctx))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.flight.Forget(flightKey)
		s.open = nil

		if err != nil {
			fetchTotal.WithLabelValues(s.name, "error").Inc()
		} else {
			fetchTotal.WithLabelValues(s.name, "ok").Inc()
		}
		if f.generation == s.generation && (err == nil || f.refresh) {
			s.cached = &cachedResult[T]{value: value, err: err}
		} else if err != nil {
			s.cached = nil
		}
		return &cachedResult[T]{value: value, err: err}, nil
	})
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		r := res.Val.(*cachedResult[T])
		return r.value, r.err
	}
}
