package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// idempotentRetries is how many times GET and DELETE calls are retried
// after a transport error or a 5xx answer.
const idempotentRetries = 2

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout, idempotentRetries)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed).
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. POST /api/auth/register.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/register", req)
}

// Login implements [ServerAdapter]. POST /api/auth/login.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/login", req)
}

// Refresh implements [ServerAdapter]. POST /api/auth/refresh.
func (h *httpServerAdapter) Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/refresh", models.RefreshRequest{RefreshToken: refreshToken})
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&auth).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if auth.AccessToken == "" {
		return models.AuthResponse{}, fmt.Errorf("%s: empty access token in response", path)
	}

	h.SetToken(auth.AccessToken)
	return auth, nil
}

// Logout implements [ServerAdapter]. POST /api/auth/logout. The stored token
// is cleared when the server accepted the call.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

// SearchProperties implements [ServerAdapter]. GET /api/properties with
// only the supplied filters as query parameters.
func (h *httpServerAdapter) SearchProperties(ctx context.Context, params models.SearchParams) ([]models.Property, error) {
	query := map[string]string{}
	for name, value := range map[string]string{
		"city":     params.City,
		"type":     params.Type,
		"minPrice": params.MinPrice,
		"maxPrice": params.MaxPrice,
	} {
		if v := strings.TrimSpace(value); v != "" {
			query[name] = v
		}
	}

	return h.getProperties(h.client.R().SetContext(ctx).SetQueryParams(query), "/api/properties")
}

// FeaturedProperties implements [ServerAdapter]. GET /api/properties/featured.
func (h *httpServerAdapter) FeaturedProperties(ctx context.Context) ([]models.Property, error) {
	return h.getProperties(h.client.R().SetContext(ctx), "/api/properties/featured")
}

// GetProperty implements [ServerAdapter]. GET /api/properties/{id}.
func (h *httpServerAdapter) GetProperty(ctx context.Context, id uuid.UUID) (models.Property, error) {
	var property models.Property

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id.String()).
		SetResult(&property).
		Get("/api/properties/{id}")
	if err != nil {
		return models.Property{}, fmt.Errorf("get property request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Property{}, err
	}

	return property, nil
}

// Favorites implements [ServerAdapter]. GET /api/favorites.
func (h *httpServerAdapter) Favorites(ctx context.Context) ([]models.Property, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	return h.getProperties(req, "/api/favorites")
}

// AddFavorite implements [ServerAdapter]. POST /api/favorites/{propertyId}.
func (h *httpServerAdapter) AddFavorite(ctx context.Context, propertyID uuid.UUID) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetPathParam("propertyId", propertyID.String()).Post("/api/favorites/{propertyId}")
	if err != nil {
		return fmt.Errorf("add favorite request: %w", err)
	}

	return mapHTTPError(resp)
}

// RemoveFavorite implements [ServerAdapter]. DELETE /api/favorites/{propertyId}.
func (h *httpServerAdapter) RemoveFavorite(ctx context.Context, propertyID uuid.UUID) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetPathParam("propertyId", propertyID.String()).Delete("/api/favorites/{propertyId}")
	if err != nil {
		return fmt.Errorf("remove favorite request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [ServerAdapter]. GET /api/version answers plain text.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) getProperties(req *resty.Request, path string) ([]models.Property, error) {
	var properties []models.Property

	resp, err := req.SetResult(&properties).Get(path)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if properties == nil {
		properties = []models.Property{}
	}
	return properties, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}
