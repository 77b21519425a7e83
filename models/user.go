package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered principal of the rental platform.
// Sensitive fields must never be exposed outside trusted boundaries;
// use [UserResponse] when rendering a user to API clients.
type User struct {
	// UserID is the unique identifier of the user.
	UserID uuid.UUID `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is the unique e-mail address.
	Email string `json:"email"`

	// PasswordHash holds the one-way bcrypt hash of the password.
	// The plaintext password never reaches the persistence layer.
	PasswordHash string `json:"-"`

	// FullName is the display name shown next to owned listings.
	FullName string `json:"full_name"`

	// PhoneNumber is an optional contact phone.
	PhoneNumber string `json:"phone_number"`

	// Role is the principal's role. Roles do not widen mutation rights
	// on properties.
	Role Role `json:"role"`

	// Enabled reports whether the account may log in.
	Enabled bool `json:"enabled"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Principal returns the identity of u as seen by the authorization layer.
func (u User) Principal() Principal {
	return Principal{
		UserID:   u.UserID,
		Username: u.Username,
		Role:     u.Role,
	}
}

// Principal is the acting identity resolved from an access token.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
