package http

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/service"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// Each method field can be overridden per test case. An unset field
// panics, which fails the test loudly if an unexpected call happens.

type mockAuthService struct {
	registerFn         func(ctx context.Context, request models.RegisterRequest) (models.AuthResult, error)
	loginFn            func(ctx context.Context, request models.LoginRequest) (models.AuthResult, error)
	refreshFn          func(ctx context.Context, refreshToken string) (models.AuthResult, error)
	logoutFn           func(ctx context.Context, userID uuid.UUID) error
	resolvePrincipalFn func(ctx context.Context, accessToken string) (models.Principal, error)
}

func (m *mockAuthService) Register(ctx context.Context, request models.RegisterRequest) (models.AuthResult, error) {
	return m.registerFn(ctx, request)
}

func (m *mockAuthService) Login(ctx context.Context, request models.LoginRequest) (models.AuthResult, error) {
	return m.loginFn(ctx, request)
}

func (m *mockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (models.AuthResult, error) {
	return m.refreshFn(ctx, refreshToken)
}

func (m *mockAuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return m.logoutFn(ctx, userID)
}

func (m *mockAuthService) ResolvePrincipal(ctx context.Context, accessToken string) (models.Principal, error) {
	return m.resolvePrincipalFn(ctx, accessToken)
}

type mockPropertyService struct {
	createFn       func(ctx context.Context, request models.PropertyRequest, owner models.Principal) (models.Property, error)
	getFn          func(ctx context.Context, id uuid.UUID) (models.Property, error)
	listAllFn      func(ctx context.Context) ([]models.Property, error)
	listFeaturedFn func(ctx context.Context) ([]models.Property, error)
	searchFn       func(ctx context.Context, params models.SearchParams) ([]models.Property, error)
	updateFn       func(ctx context.Context, id uuid.UUID, request models.PropertyRequest, actor models.Principal) (models.Property, error)
	deleteFn       func(ctx context.Context, id uuid.UUID, actor models.Principal) error
}

func (m *mockPropertyService) Create(ctx context.Context, request models.PropertyRequest, owner models.Principal) (models.Property, error) {
	return m.createFn(ctx, request, owner)
}

func (m *mockPropertyService) Get(ctx context.Context, id uuid.UUID) (models.Property, error) {
	return m.getFn(ctx, id)
}

func (m *mockPropertyService) ListAll(ctx context.Context) ([]models.Property, error) {
	return m.listAllFn(ctx)
}

func (m *mockPropertyService) ListFeatured(ctx context.Context) ([]models.Property, error) {
	return m.listFeaturedFn(ctx)
}

func (m *mockPropertyService) Search(ctx context.Context, params models.SearchParams) ([]models.Property, error) {
	return m.searchFn(ctx, params)
}

func (m *mockPropertyService) Update(ctx context.Context, id uuid.UUID, request models.PropertyRequest, actor models.Principal) (models.Property, error) {
	return m.updateFn(ctx, id, request, actor)
}

func (m *mockPropertyService) Delete(ctx context.Context, id uuid.UUID, actor models.Principal) error {
	return m.deleteFn(ctx, id, actor)
}

type mockFavoriteService struct {
	listFn   func(ctx context.Context, principal models.Principal) ([]models.Property, error)
	addFn    func(ctx context.Context, principal models.Principal, propertyID uuid.UUID) error
	removeFn func(ctx context.Context, principal models.Principal, propertyID uuid.UUID) error
}

func (m *mockFavoriteService) List(ctx context.Context, principal models.Principal) ([]models.Property, error) {
	return m.listFn(ctx, principal)
}

func (m *mockFavoriteService) Add(ctx context.Context, principal models.Principal, propertyID uuid.UUID) error {
	return m.addFn(ctx, principal, propertyID)
}

func (m *mockFavoriteService) Remove(ctx context.Context, principal models.Principal, propertyID uuid.UUID) error {
	return m.removeFn(ctx, principal, propertyID)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// fakeLimiter returns decision/err and records the keys it was asked for.
type fakeLimiter struct {
	decision store.RateLimitDecision
	err      error
	keys     []string
}

func (f *fakeLimiter) Take(_ context.Context, key string) (store.RateLimitDecision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

const validToken = "valid-access-token"

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

var testPrincipal = models.Principal{
	UserID:   uuid.MustParse("0195a4b0-0000-7000-8000-000000000001"),
	Username: "alice",
	Role:     models.RoleUser,
}

// acceptingAuth resolves validToken to testPrincipal and rejects anything
// else as an invalid access token.
func acceptingAuth() *mockAuthService {
	return &mockAuthService{
		resolvePrincipalFn: func(_ context.Context, token string) (models.Principal, error) {
			if token != validToken {
				return models.Principal{}, service.ErrInvalidAccessToken
			}
			return testPrincipal, nil
		},
	}
}

func newTestServices() *service.Services {
	return &service.Services{
		AuthService:     acceptingAuth(),
		PropertyService: &mockPropertyService{},
		FavoriteService: &mockFavoriteService{},
		AppInfoService:  &mockAppInfoService{version: "test-version"},
	}
}

// newTestHandler builds a Handler with a nop logger and a frozen clock.
func newTestHandler(services *service.Services, opts ...Option) *Handler {
	h := NewHandler(services, config.Server{}, logger.Nop(), opts...)
	h.now = func() time.Time { return fixedNow }
	return h
}
