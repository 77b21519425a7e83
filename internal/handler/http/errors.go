// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by this package before a request reaches the
// service layer.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidPathID is returned when a path parameter is not a UUID.
	ErrInvalidPathID = errors.New("invalid id in request path")

	// ErrNoPrincipalInContext means a protected handler ran without the
	// auth middleware in front of it.
	ErrNoPrincipalInContext = errors.New("no principal in request context")
)
