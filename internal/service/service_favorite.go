package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

type favoriteService struct {
	favoriteRepository store.FavoriteRepository
	propertyRepository store.PropertyRepository
	userRepository     store.UserRepository

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

func NewFavoriteService(
	favoriteRepository store.FavoriteRepository,
	propertyRepository store.PropertyRepository,
	userRepository store.UserRepository,
	logger *logger.Logger,
) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		propertyRepository: propertyRepository,
		userRepository:     userRepository,
		ids:                utils.NewUUIDGenerator(),
		now:                func() time.Time { return time.Now().UTC() },
		logger:             logger,
	}
}

// List returns the principal's favorite properties, oldest bookmark first.
func (f *favoriteService) List(ctx context.Context, principal models.Principal) ([]models.Property, error) {
	properties, err := f.favoriteRepository.List(ctx, principal.UserID)
	if err != nil {
		return nil, internalError("listing favorites", err)
	}
	return properties, nil
}

// Add bookmarks a property. The principal and the property must exist
// before the duplicate check runs. A property deleted between the check
// and the insert is caught by the foreign key and reported as not found.
func (f *favoriteService) Add(ctx context.Context, principal models.Principal, propertyID uuid.UUID) error {
	if _, err := f.userRepository.FindUserByID(ctx, principal.UserID); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		return internalError("finding user", err)
	}

	if _, err := f.propertyRepository.Get(ctx, propertyID); err != nil {
		if errors.Is(err, store.ErrPropertyNotFound) {
			return ErrPropertyNotFound
		}
		return internalError("getting property", err)
	}

	exists, err := f.favoriteRepository.Exists(ctx, principal.UserID, propertyID)
	if err != nil {
		return internalError("checking favorite", err)
	}
	if exists {
		return ErrPropertyAlreadyFavorited
	}

	err = f.favoriteRepository.Add(ctx, models.Favorite{
		ID:         f.ids.NewID(),
		UserID:     principal.UserID,
		PropertyID: propertyID,
		CreatedAt:  f.now(),
	})
	switch {
	case errors.Is(err, store.ErrFavoriteAlreadyExists):
		return ErrPropertyAlreadyFavorited
	case errors.Is(err, store.ErrPropertyNotFound):
		return ErrPropertyNotFound
	case err != nil:
		return internalError("adding favorite", err)
	}

	logger.FromContext(ctx).Info().
		Str("user_id", principal.UserID.String()).
		Str("property_id", propertyID.String()).
		Msg("favorite added")

	return nil
}

func (f *favoriteService) Remove(ctx context.Context, principal models.Principal, propertyID uuid.UUID) error {
	err := f.favoriteRepository.Remove(ctx, principal.UserID, propertyID)
	if errors.Is(err, store.ErrFavoriteNotFound) {
		return ErrFavoriteNotFound
	}
	if err != nil {
		return internalError("removing favorite", err)
	}
	return nil
}
