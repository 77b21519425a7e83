package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/rent-pe-easy/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidAuthorizationHeader is returned by ParseBearerToken when the
// header is not of the form "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// GenerateAccessToken creates a signed HMAC-SHA256 access token for the
// given principal.
//
// The token carries the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the principal id
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//   - role           : the principal's role
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateAccessToken("rent-pe-easy", user.Principal(), 15*time.Minute, "secret", time.Now())
func GenerateAccessToken(issuer string, principal models.Principal, tokenDuration time.Duration, signKey string, now time.Time) (models.AccessToken, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" || principal.UserID == uuid.Nil {
		return models.AccessToken{}, errors.New("invalid params for generating access token")
	}

	claims := models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   principal.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: principal.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("error occurred during signing access token: %w", err)
	}

	return models.AccessToken{SignedString: signed, Claims: claims}, nil
}

// ValidateAndParseAccessToken validates the given token string and returns
// its claims.
//
// Validation includes:
//   - Signature verification with HS256 only
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) presence and conversion to a uuid
//
// Errors from the jwt library are wrapped, so callers can still match
// jwt.ErrTokenExpired and friends with errors.Is.
func ValidateAndParseAccessToken(tokenString, tokenSignKey, tokenIssuer string) (models.AccessClaims, error) {
	claims := models.AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.AccessClaims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.AccessClaims{}, errors.New("empty subject error")
	}
	if _, err = claims.UserID(); err != nil {
		return models.AccessClaims{}, err
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], models.TokenTypeBearer) {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
