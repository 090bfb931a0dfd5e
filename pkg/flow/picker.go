package flow

import (
	"context"
	"fmt"

	"github.com/mattsolo1/grove-zeplin/pkg/store"
)

// QuickPick is a single-selection picker over the items of a store.
type QuickPick[T any] struct {
	Store       store.Store[[]T]
	Render      func(T) Entry
	Title       string
	Placeholder string
	// EmptyMessage is shown instead of the picker when the store has no
	// items. When blank the picker is shown empty.
	EmptyMessage string
	// RenderError turns a fetch failure into a message. When nil the error
	// text is shown.
	RenderError func(error) string
}

// Pick loads the items and lets the user choose one. It reports Completed
// with the chosen item, Cancelled when the picker is dismissed, Empty when
// there is nothing to choose from, and Failed together with the cause when
// loading fails or the picker cannot be shown.
func (q *QuickPick[T]) Pick(ctx context.Context, selector Selector, messenger Messenger) (T, Result, error) {
	var zero T

	items, err := q.Store.Get(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return zero, Cancelled, nil
		}
		text := err.Error()
		if q.RenderError != nil {
			text = q.RenderError(err)
		}
		messenger.Error(ctx, text)
		return zero, Failed, err
	}

	if len(items) == 0 && q.EmptyMessage != "" {
		messenger.Info(ctx, q.EmptyMessage)
		return zero, Empty, nil
	}

	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = q.Render(item)
	}

	index, err := selector.Select(ctx, SelectRequest{
		Title:       q.Title,
		Placeholder: q.Placeholder,
		Entries:     entries,
	})
	if err != nil {
		return zero, Failed, fmt.Errorf("show picker: %w", err)
	}
	if index < 0 || index >= len(items) {
		return zero, Cancelled, nil
	}
	return items[index], Completed, nil
}
