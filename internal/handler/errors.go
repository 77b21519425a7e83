package handler

import "errors"

// ErrNoTransportConfigured means the server config names neither an HTTP
// nor a gRPC address.
var ErrNoTransportConfigured = errors.New("neither http nor grpc address is configured")
