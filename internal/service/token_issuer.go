package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// jwtTokenIssuer signs HS256 access tokens and mints opaque refresh tokens.
type jwtTokenIssuer struct {
	signKey string
	issuer  string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	ids *utils.UUIDGenerator
}

func NewTokenIssuer(cfg config.App) TokenIssuer {
	return &jwtTokenIssuer{
		signKey:              cfg.TokenSignKey,
		issuer:               cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		ids:                  utils.NewUUIDGenerator(),
	}
}

func (i *jwtTokenIssuer) IssueAccessToken(principal models.Principal, now time.Time) (models.AccessToken, error) {
	token, err := utils.GenerateAccessToken(i.issuer, principal, i.accessTokenDuration, i.signKey, now)
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

func (i *jwtTokenIssuer) ParseAccessToken(token string) (models.AccessClaims, error) {
	return utils.ValidateAndParseAccessToken(token, i.signKey, i.issuer)
}

// NewRefreshToken returns an unsaved token with a random opaque value.
// The value is a v4 uuid so it carries no timing information.
func (i *jwtTokenIssuer) NewRefreshToken(userID uuid.UUID, now time.Time) models.RefreshToken {
	return models.RefreshToken{
		ID:        i.ids.NewID(),
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(i.refreshTokenDuration),
		CreatedAt: now,
	}
}
