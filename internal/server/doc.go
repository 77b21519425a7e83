// Package server wires and runs the application's transport servers.
//
// It runs the HTTP API, the gRPC health service and the background workers
// under one errgroup, and shuts every transport down gracefully once the
// run context is cancelled.
package server
