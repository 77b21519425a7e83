// Package http implements the REST transport of the rental API.
//
// It exposes route wiring, request handlers, and middleware. Authentication
// resolves a principal from the bearer token before handlers run; request
// tracing, access logging, compression, metrics and rate limiting are
// handled here before requests are delegated to the service layer. Every
// non-2xx response carries a JSON [models.ErrorResponse].
package http
