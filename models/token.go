package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims is the claim set carried by an access token.
//
// The standard "sub" claim holds the principal's id; "role" is the only
// private claim. Validity is purely cryptographic plus the expiry check:
// there is no server-side revocation list for access tokens.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Role is the principal's role at issuance time.
	Role Role `json:"role"`
}

// UserID parses the subject claim as a principal id.
func (c AccessClaims) UserID() (uuid.UUID, error) {
	subject, err := c.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error converting UserID from token to uuid: %w", err)
	}

	return userID, nil
}

// AccessToken is a signed access token together with the claims it carries.
type AccessToken struct {
	// SignedString is the compact JWS representation
	// (base64url-encoded header.payload.signature).
	SignedString string

	// Claims are the claims that were signed.
	Claims AccessClaims
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t AccessToken) String() string {
	return t.SignedString
}

// RefreshToken is the persisted, opaque credential that can be exchanged
// for a new access token. A user owns at most one live refresh token.
type RefreshToken struct {
	ID        uuid.UUID
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName returns the name of the database table
// associated with the RefreshToken model.
func (t RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsExpired reports whether the token is past its expiry at now.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// AuthResult is the outcome of every successful session operation:
// a fresh access token, the principal's live refresh token and the
// principal itself.
type AuthResult struct {
	AccessToken  AccessToken
	RefreshToken RefreshToken
	User         User
}
