// Package session tracks whether the user can talk to the remote API.
package session

import "strings"

// Session reports the authentication state of the current user.
type Session interface {
	IsLoggedIn() bool
}

// TokenSession is logged in whenever it holds a non-blank API token.
type TokenSession struct {
	token string
}

// NewTokenSession creates a session for token.
func NewTokenSession(token string) *TokenSession {
	return &TokenSession{token: strings.TrimSpace(token)}
}

func (s *TokenSession) IsLoggedIn() bool {
	return s.token != ""
}

// Token returns the API token.
func (s *TokenSession) Token() string {
	return s.token
}

// Offline is the session used with local snapshots. It is always logged in.
type Offline struct{}

func (Offline) IsLoggedIn() bool {
	return true
}
