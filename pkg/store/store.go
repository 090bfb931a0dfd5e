// Package store provides the data-source abstraction that feeds pickers and
// lazy tree children.
package store

import "context"

// Store is an asynchronous data source.
//
// Get returns the cached value when one is present and fetches otherwise.
// Refresh always fetches and replaces the cached result. Implementations
// allow at most one fetch in flight at a time; concurrent callers share it.
type Store[T any] interface {
	Get(ctx context.Context) (T, error)
	Refresh(ctx context.Context) (T, error)
}

// Invalidator is implemented by stores whose cached result can be dropped.
type Invalidator interface {
	Invalidate()
}

// StaticStore serves a fixed in-memory value.
type StaticStore[T any] struct {
	value T
}

// NewStaticStore creates a store that always returns value.
func NewStaticStore[T any](value T) *StaticStore[T] {
	return &StaticStore[T]{value: value}
}

func (s *StaticStore[T]) Get(ctx context.Context) (T, error) {
	return s.value, nil
}

func (s *StaticStore[T]) Refresh(ctx context.Context) (T, error) {
	return s.value, nil
}
