package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenTypeBearer is the token type advertised in every [AuthResponse].
const TokenTypeBearer = "Bearer"

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	User         UserResponse `json:"user"`
}

// NewAuthResponse renders an [AuthResult] for API clients.
func NewAuthResponse(result AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken:  result.AccessToken.SignedString,
		RefreshToken: result.RefreshToken.Token,
		TokenType:    TokenTypeBearer,
		User:         NewUserResponse(result.User),
	}
}

// UserResponse is the public projection of [User].
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewUserResponse strips credentials from u.
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.UserID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Path      string            `json:"path"`
	Fields    map[string]string `json:"fields,omitempty"`
}
