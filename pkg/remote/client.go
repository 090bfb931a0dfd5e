// Package remote defines how barrels, screens and components are fetched
// from the design tool.
package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
)

// Client defines the interface for a source of remote entities.
type Client interface {
	// Barrels lists the barrels of the given type the user can access.
	Barrels(ctx context.Context, barrelType models.BarrelType) ([]models.Barrel, error)
	// Screens fetches the screens of a project.
	Screens(ctx context.Context, projectID string) ([]models.Screen, error)
	// ScreenSections fetches the screen sections of a project.
	ScreenSections(ctx context.Context, projectID string) ([]models.ScreenSection, error)
	// Components fetches the component hierarchy of a barrel. The first
	// element describes the barrel itself; the rest describe the styleguides
	// it inherits components from, nearest first.
	Components(ctx context.Context, barrel models.Barrel) ([]models.BarrelDetails, error)
}

// ErrorKind classifies remote failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotAuthenticated
	KindNotFound
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotAuthenticated:
		return "not authenticated"
	case KindNotFound:
		return "not found"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is a typed data-access failure.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of a remote error anywhere in err's chain.
func KindOf(err error) ErrorKind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return KindUnknown
}

// IsNotAuthenticated reports whether err is an authentication failure.
func IsNotAuthenticated(err error) bool {
	return KindOf(err) == KindNotAuthenticated
}

// IsNotFound reports whether err reports a missing entity.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
