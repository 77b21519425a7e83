// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// rent-pe-easy services, handlers and middleware.
//
// All Msg* constants are human-readable message strings that end up in the
// "message" field of an API error body. Keeping them in one place ensures
// consistent wording throughout the API.
package app

// Transport-level messages written by the HTTP layer.
const (
	// MsgInternalServerError replaces the details of any unexpected failure.
	MsgInternalServerError = "Internal server error"

	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidGzip is returned for a gzip-encoded body that does not
	// decompress.
	MsgInvalidGzip = "Invalid gzip data"

	MsgAuthenticationRequired = "Authentication required"
	MsgInvalidAuthHeader      = "Invalid Authorization header"

	// MsgTooManyRequests is returned when the rate limiter rejects a call.
	MsgTooManyRequests = "Too many requests"

	MsgResourceNotFound = "Resource not found"

	// MsgMethodNotAllowed is a format string taking the request method.
	MsgMethodNotAllowed = "Method %s not allowed"
)

// Domain messages carried by service errors.
const (
	MsgValidationFailed    = "Validation failed"
	MsgInvalidSearchFilter = "Invalid search filter"
	MsgMustBeDecimal       = "Must be a decimal number"
	MsgUsernameTaken       = "Username already exists"
	MsgEmailTaken          = "Email already exists"
	MsgInvalidCredentials  = "Invalid username or password"
	MsgAccountDisabled     = "Account is disabled"
	MsgInvalidAccessToken  = "Invalid or expired access token"
	MsgInvalidRefreshToken = "Invalid refresh token"
	MsgRefreshTokenExpired = "Refresh token expired"
	MsgUserNotFound        = "User not found"
	MsgPropertyNotFound    = "Property not found"
	MsgNotPropertyOwner    = "You don't have permission to modify this property"
	MsgAlreadyFavorited    = "Property already in favorites"
	MsgFavoriteNotFound    = "Favorite not found"
)
