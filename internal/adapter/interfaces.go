// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer the command-line client uses
// to talk to the rent-pe-easy API.
//
// The primary abstraction is [ServerAdapter]. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Non-2xx answers are decoded from the API's JSON error body into
// [*APIError], which unwraps to the sentinel values in errors.go so that
// callers can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized]
// for 401).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the rent-pe-easy API.
// Implementations handle serialisation, the Authorization header and the
// mapping of transport errors to the sentinel values of this package.
type ServerAdapter interface {
	// SetToken stores the access token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored access token, or "" when none is set.
	Token() string

	// Register creates an account. On success the returned access token is
	// stored via SetToken.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates with username and password. On success the
	// returned access token is stored via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Refresh exchanges a refresh token for a new token pair and stores the
	// new access token.
	Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error)

	// Logout revokes the caller's refresh token and clears the stored
	// access token.
	Logout(ctx context.Context) error

	// SearchProperties lists properties. Empty params list everything.
	SearchProperties(ctx context.Context, params models.SearchParams) ([]models.Property, error)

	// FeaturedProperties lists featured properties.
	FeaturedProperties(ctx context.Context) ([]models.Property, error)

	// GetProperty fetches a single property.
	GetProperty(ctx context.Context, id uuid.UUID) (models.Property, error)

	// Favorites lists the caller's favorite properties.
	Favorites(ctx context.Context) ([]models.Property, error)

	// AddFavorite bookmarks a property for the caller.
	AddFavorite(ctx context.Context, propertyID uuid.UUID) error

	// RemoveFavorite removes a bookmark.
	RemoveFavorite(ctx context.Context, propertyID uuid.UUID) error

	// Version returns the API version string.
	Version(ctx context.Context) (string, error)
}
