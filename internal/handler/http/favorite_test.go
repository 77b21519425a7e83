package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/rent-pe-easy/internal/service"
	"github.com/MKhiriev/rent-pe-easy/models"
)

func favoriteServiceOf(services *service.Services) *mockFavoriteService {
	return services.FavoriteService.(*mockFavoriteService)
}

func TestListFavorites(t *testing.T) {
	tests := []struct {
		name     string
		returned []models.Property
		wantBody string
	}{
		{name: "empty list is an array", returned: nil, wantBody: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			favoriteServiceOf(services).listFn = func(_ context.Context, principal models.Principal) ([]models.Property, error) {
				assert.Equal(t, testPrincipal, principal)
				return tt.returned, nil
			}
			h := newTestHandler(services)

			rr := serve(t, h, http.MethodGet, "/api/favorites", "", validToken)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestListFavorites_ReturnsProperties(t *testing.T) {
	services := newTestServices()
	favoriteServiceOf(services).listFn = func(context.Context, models.Principal) ([]models.Property, error) {
		return []models.Property{stubProperty()}, nil
	}
	h := newTestHandler(services)

	rr := serve(t, h, http.MethodGet, "/api/favorites", "", validToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), testPropertyID.String())
}

func TestAddFavorite(t *testing.T) {
	tests := []struct {
		name       string
		addErr     error
		wantStatus int
	}{
		{name: "added", wantStatus: http.StatusCreated},
		{name: "already favorited", addErr: service.ErrPropertyAlreadyFavorited, wantStatus: http.StatusConflict},
		{name: "unknown property", addErr: service.ErrPropertyNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			favoriteServiceOf(services).addFn = func(_ context.Context, principal models.Principal, propertyID uuid.UUID) error {
				assert.Equal(t, testPrincipal, principal)
				assert.Equal(t, testPropertyID, propertyID)
				return tt.addErr
			}
			h := newTestHandler(services)

			rr := serve(t, h, http.MethodPost, "/api/favorites/"+testPropertyID.String(), "", validToken)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRemoveFavorite(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		removeErr  error
		wantStatus int
	}{
		{name: "removed", path: "/api/favorites/" + testPropertyID.String(), wantStatus: http.StatusNoContent},
		{name: "not a favorite", path: "/api/favorites/" + testPropertyID.String(), removeErr: service.ErrFavoriteNotFound, wantStatus: http.StatusNotFound},
		{name: "malformed id", path: "/api/favorites/42", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			favoriteServiceOf(services).removeFn = func(_ context.Context, _ models.Principal, propertyID uuid.UUID) error {
				assert.Equal(t, testPropertyID, propertyID)
				return tt.removeErr
			}
			h := newTestHandler(services)

			rr := serve(t, h, http.MethodDelete, tt.path, "", validToken)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
