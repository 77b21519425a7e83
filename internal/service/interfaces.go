package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/models"
)

// AuthService is the session manager: it owns the refresh-token lifecycle
// and resolves principals from access tokens.
type AuthService interface {
	// Register creates an account and logs it in.
	Register(ctx context.Context, request models.RegisterRequest) (models.AuthResult, error)
	// Login verifies credentials and rotates the principal's refresh token.
	Login(ctx context.Context, request models.LoginRequest) (models.AuthResult, error)
	// RefreshAccessToken exchanges a live refresh token for a new access
	// token. The refresh token itself is returned unchanged.
	RefreshAccessToken(ctx context.Context, refreshToken string) (models.AuthResult, error)
	// Logout revokes the principal's refresh token, if any.
	Logout(ctx context.Context, userID uuid.UUID) error
	// ResolvePrincipal validates an access token and loads the acting user.
	ResolvePrincipal(ctx context.Context, accessToken string) (models.Principal, error)
}

// TokenIssuer creates access tokens and refresh tokens.
type TokenIssuer interface {
	IssueAccessToken(principal models.Principal, now time.Time) (models.AccessToken, error)
	ParseAccessToken(token string) (models.AccessClaims, error)
	NewRefreshToken(userID uuid.UUID, now time.Time) models.RefreshToken
}

// PropertyService is the property catalog.
type PropertyService interface {
	Create(ctx context.Context, request models.PropertyRequest, owner models.Principal) (models.Property, error)
	Get(ctx context.Context, id uuid.UUID) (models.Property, error)
	ListAll(ctx context.Context) ([]models.Property, error)
	ListFeatured(ctx context.Context) ([]models.Property, error)
	// Search returns AVAILABLE properties matching every supplied filter.
	Search(ctx context.Context, params models.SearchParams) ([]models.Property, error)
	Update(ctx context.Context, id uuid.UUID, request models.PropertyRequest, actor models.Principal) (models.Property, error)
	Delete(ctx context.Context, id uuid.UUID, actor models.Principal) error
}

// FavoriteService is the favorite ledger.
type FavoriteService interface {
	List(ctx context.Context, principal models.Principal) ([]models.Property, error)
	Add(ctx context.Context, principal models.Principal, propertyID uuid.UUID) error
	Remove(ctx context.Context, principal models.Principal, propertyID uuid.UUID) error
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the backing store is reachable.
type HealthService interface {
	Check(ctx context.Context) error
}

// AuthServiceWrapper and PropertyServiceWrapper define middleware
// composition. Implementations wrap an existing service to add behavior
// such as validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

type PropertyServiceWrapper interface {
	Wrap(PropertyService) PropertyService
}
