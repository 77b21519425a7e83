// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command named by args[0] and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// SessionStore persists the token pair between invocations.
type SessionStore interface {
	// Load returns the saved session or ErrNoSession.
	Load() (Session, error)
	// Save replaces the saved session.
	Save(session Session) error
	// Clear removes the saved session. Clearing a missing session is not
	// an error.
	Clear() error
}
