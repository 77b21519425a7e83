// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/models"
)

var testPropertyID = uuid.MustParse("0b5b4f7a-7d1c-4e7b-9a8e-3f0c2d1e4a55")

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func authResponse(access string) models.AuthResponse {
	return models.AuthResponse{
		AccessToken:  access,
		RefreshToken: "refresh-" + access,
		TokenType:    "Bearer",
		User:         models.UserResponse{Username: "alice", Role: models.RoleUser},
	}
}

func TestNewHTTPServerAdapter_Address(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
		wantErr bool
	}{
		{name: "scheme added", address: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash trimmed", address: "https://api.example.com/", want: "https://api.example.com"},
		{name: "empty", address: "  ", wantErr: true},
		{name: "no host", address: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: tt.address}, logger.Nop())
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, a.(*httpServerAdapter).client.BaseURL)
		})
	}
}

func TestRegister_StoresAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		writeJSON(t, w, http.StatusCreated, authResponse("access-1"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "refresh-access-1", got.RefreshToken)
	assert.Equal(t, "access-1", a.Token())
}

func TestRegister_ConflictCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{
			Status:  http.StatusConflict,
			Message: "Username is already taken",
			Path:    r.URL.Path,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice"})

	require.ErrorIs(t, err, ErrConflict)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Username is already taken", apiErr.Message)
	assert.Empty(t, a.Token())
}

func TestLogin_ValidationFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Fields:  map[string]string{"username": "must not be blank", "password": "must not be blank"},
		})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Login(context.Background(), models.LoginRequest{})

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "http 400: Validation failed; password: must not be blank; username: must not be blank", err.Error())
}

func TestRefresh_SendsRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/refresh", r.URL.Path)

		var req models.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "old-refresh", req.RefreshToken)

		writeJSON(t, w, http.StatusOK, authResponse("access-2"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("access-1")

	_, err := a.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "access-2", a.Token())
}

func TestRefresh_EmptyAccessTokenIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.AuthResponse{})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Refresh(context.Background(), "r")
	require.Error(t, err)
}

func TestLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(" access-1 ")

	require.NoError(t, a.Logout(context.Background()))
	assert.Empty(t, a.Token())
}

func TestAuthenticatedCalls_RequireToken(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	assert.ErrorIs(t, a.Logout(ctx), ErrNotAuthenticated)
	_, err := a.Favorites(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, a.AddFavorite(ctx, testPropertyID), ErrNotAuthenticated)
	assert.ErrorIs(t, a.RemoveFavorite(ctx, testPropertyID), ErrNotAuthenticated)
	assert.Zero(t, calls.Load())
}

func TestSearchProperties_OnlySuppliedFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "Pune", q.Get("city"))
		assert.Equal(t, "1000", q.Get("minPrice"))
		assert.False(t, q.Has("type"))
		assert.False(t, q.Has("maxPrice"))

		writeJSON(t, w, http.StatusOK, []models.Property{{ID: testPropertyID, Title: "Flat", Price: decimal.NewFromInt(1500)}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).SearchProperties(context.Background(), models.SearchParams{City: "Pune", MinPrice: " 1000 "})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, testPropertyID, got[0].ID)
	assert.True(t, decimal.NewFromInt(1500).Equal(got[0].Price))
}

func TestFeaturedProperties_NullBodyIsEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties/featured", r.URL.Path)
		writeJSON(t, w, http.StatusOK, nil)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).FeaturedProperties(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetProperty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/properties/"+testPropertyID.String() {
			writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Status: http.StatusNotFound, Message: "Property not found"})
			return
		}
		writeJSON(t, w, http.StatusOK, models.Property{ID: testPropertyID, Title: "Villa"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	got, err := a.GetProperty(context.Background(), testPropertyID)
	require.NoError(t, err)
	assert.Equal(t, "Villa", got.Title)

	_, err = a.GetProperty(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavorites_RoundTrip(t *testing.T) {
	var added, removed atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/favorites":
			writeJSON(t, w, http.StatusOK, []models.Property{{ID: testPropertyID}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/favorites/"+testPropertyID.String():
			added.Store(true)
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/favorites/"+testPropertyID.String():
			removed.Store(true)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")
	ctx := context.Background()

	favorites, err := a.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	require.NoError(t, a.AddFavorite(ctx, testPropertyID))
	require.NoError(t, a.RemoveFavorite(ctx, testPropertyID))
	assert.True(t, added.Load())
	assert.True(t, removed.Load())
}

func TestAddFavorite_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Status: http.StatusConflict, Message: "Property already in favorites"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	assert.ErrorIs(t, a.AddFavorite(context.Background(), testPropertyID), ErrConflict)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("1.4.0\n"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", got)
}

func TestMapHTTPError_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, "http 418: I'm a teapot", err.Error())
}
