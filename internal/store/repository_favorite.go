package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/models"
)

type favoriteRepository struct {
	logger     *logger.Logger
	db         *DB
	properties *propertyRepository
}

// NewFavoriteRepository constructs a [FavoriteRepository] over the
// "favorites" table.
func NewFavoriteRepository(db *DB, logger *logger.Logger) FavoriteRepository {
	logger.Debug().Msg("creating favorite repository")
	return &favoriteRepository{
		db:         db,
		logger:     logger,
		properties: &propertyRepository{db: db, logger: logger},
	}
}

// List returns the user's favorite properties in the order they were added.
func (r *favoriteRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Property, error) {
	query, args, err := r.db.selectProperties().
		Join(tableFavorites + " f ON f.property_id = p.id").
		Where(sq.Eq{"f.user_id": userID.String()}).
		OrderBy("f.created_at", "f.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.properties.list(ctx, "*favoriteRepository.List", query, args)
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("COUNT(*)").
		From(tableFavorites).
		Where(sq.Eq{"user_id": userID.String(), "property_id": propertyID.String()}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*favoriteRepository.Exists").Msg("error counting favorites")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}

// Add inserts the favorite.
//
// Error handling:
//   - unique violation on (user_id, property_id) → [ErrFavoriteAlreadyExists].
//   - foreign key violation → [ErrPropertyNotFound].
func (r *favoriteRepository) Add(ctx context.Context, favorite models.Favorite) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(tableFavorites).
		Columns("id", "user_id", "property_id", "created_at").
		Values(favorite.ID, favorite.UserID, favorite.PropertyID, favorite.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		switch kind, _ := r.db.constraint(err); kind {
		case UniqueViolation:
			return ErrFavoriteAlreadyExists
		case ForeignKeyViolation:
			return ErrPropertyNotFound
		}

		log.Err(err).
			Str("func", "*favoriteRepository.Add").
			Str("property_id", favorite.PropertyID.String()).
			Msg("error inserting favorite")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Remove deletes the favorite or returns [ErrFavoriteNotFound].
func (r *favoriteRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(tableFavorites).
		Where(sq.Eq{"user_id": userID.String(), "property_id": propertyID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*favoriteRepository.Remove").Msg("error deleting favorite")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}
