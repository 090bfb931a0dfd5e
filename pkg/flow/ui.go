// Package flow implements the picker-driven user flows: jumping to a screen
// or component, opening entities in Zeplin, and managing saved barrels.
package flow

import (
	"context"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
)

// Entry is how one item is shown in a picker.
type Entry struct {
	Label  string
	Detail string
}

// SelectRequest describes a single-selection picker.
type SelectRequest struct {
	Title       string
	Placeholder string
	Entries     []Entry
}

// Selector shows pickers.
type Selector interface {
	// Select returns the index of the chosen entry, or -1 when the picker
	// was dismissed.
	Select(ctx context.Context, req SelectRequest) (int, error)
}

// Message is a notification offering a set of choices.
type Message struct {
	Text    string
	Options []string
	// Modal messages block the host until answered.
	Modal bool
}

// Messenger shows messages.
type Messenger interface {
	// Choose returns the chosen option, or "" when the message was dismissed.
	Choose(ctx context.Context, msg Message) (string, error)
	Info(ctx context.Context, text string)
	Error(ctx context.Context, text string)
}

// Opener opens URIs with the system handler.
type Opener interface {
	Open(ctx context.Context, uri string) error
}

// URIProvider produces a link for the application type the user prefers.
type URIProvider interface {
	URI(appType models.ApplicationType) string
}

// URIFunc adapts a function to URIProvider.
type URIFunc func(appType models.ApplicationType) string

func (f URIFunc) URI(appType models.ApplicationType) string {
	return f(appType)
}
