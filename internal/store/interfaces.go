package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/models"
)

// ErrorClassificator maps driver errors onto storage-level categories.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may succeed on retry.
	Classify(err error) ErrorClassification
	// Constraint reports which integrity constraint err violated, if any,
	// together with a driver-specific constraint description.
	Constraint(err error) (ConstraintKind, string)
}

// UserRepository persists principal records.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// CreateUserWithToken inserts user and its first refresh token
	// atomically.
	CreateUserWithToken(ctx context.Context, user models.User, token models.RefreshToken) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository persists refresh tokens. A user owns at most one.
type RefreshTokenRepository interface {
	// ReplaceForUser deletes any token owned by token.UserID and inserts
	// token, atomically.
	ReplaceForUser(ctx context.Context, token models.RefreshToken) error
	FindByToken(ctx context.Context, token string) (models.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	// DeleteExpired removes every token whose expiry is not after now and
	// returns the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PropertyRepository persists listings with their ordered images and
// amenities.
type PropertyRepository interface {
	Create(ctx context.Context, property models.Property) (models.Property, error)
	Get(ctx context.Context, id uuid.UUID) (models.Property, error)
	List(ctx context.Context) ([]models.Property, error)
	ListFeatured(ctx context.Context) ([]models.Property, error)
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Property, error)
	// Update loads the property under lock, passes it to mutate and stores
	// the result. An error from mutate aborts the transaction and is
	// returned unchanged.
	Update(ctx context.Context, id uuid.UUID, mutate func(current models.Property) (models.Property, error)) (models.Property, error)
	// Delete loads the property under lock, runs check and removes the
	// property with its images, amenities and favorites. An error from
	// check aborts the transaction and is returned unchanged.
	Delete(ctx context.Context, id uuid.UUID, check func(current models.Property) error) error
}

// FavoriteRepository persists user bookmarks.
type FavoriteRepository interface {
	// List returns the user's favorite properties in insertion order.
	List(ctx context.Context, userID uuid.UUID) ([]models.Property, error)
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	Add(ctx context.Context, favorite models.Favorite) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
