package server

import "context"

// Server defines the lifecycle contract of the application server.
type Server interface {
	// RunServer starts every transport and background worker and blocks
	// until ctx is cancelled or one of them fails.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops every transport.
	Shutdown()
}

// BackgroundRunner is satisfied by the workers aggregate.
type BackgroundRunner interface {
	Run(ctx context.Context)
}
