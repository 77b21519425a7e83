package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// propertyRepository is the SQL implementation of [PropertyRepository].
// Images and amenities live in child tables ordered by "position" and are
// loaded with one extra query per collection for the whole result set.
type propertyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPropertyRepository constructs a [PropertyRepository].
func NewPropertyRepository(db *DB, logger *logger.Logger) PropertyRepository {
	logger.Debug().Msg("creating property repository")
	return &propertyRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the property and its ordered images and amenities in one
// transaction and returns it with the owner's identity resolved.
func (r *propertyRepository) Create(ctx context.Context, property models.Property) (models.Property, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(tableProperties).
		Columns(
			"id", "title", "description", "type", "city", "locality",
			"price", "price_unit", "beds", "baths", "square_feet",
			"is_featured", "is_verified", "owner_id", "contact_number", "status",
			"created_at", "updated_at",
		).
		Values(
			property.ID, property.Title, property.Description, property.Type, property.City, property.Locality,
			property.Price, property.PriceUnit, property.Beds, property.Baths, property.SquareFeet,
			property.IsFeatured, property.IsVerified, property.OwnerID, property.ContactNumber, property.Status,
			property.CreatedAt, property.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return models.Property{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.Property
	err = r.db.inTx(ctx, "*propertyRepository.Create", false, func(tx *sql.Tx) error {
		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			if kind, _ := r.db.constraint(execErr); kind == ForeignKeyViolation {
				return ErrOwnerNotFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		if itemsErr := r.insertItems(ctx, tx, property); itemsErr != nil {
			return itemsErr
		}

		var getErr error
		created, getErr = r.get(ctx, tx, property.ID, false)
		return getErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "*propertyRepository.Create").
			Str("owner_id", property.OwnerID.String()).
			Msg("error creating property")
		return models.Property{}, err
	}

	return created, nil
}

// Get returns the property with the given id, whatever its status.
func (r *propertyRepository) Get(ctx context.Context, id uuid.UUID) (models.Property, error) {
	property, err := r.get(ctx, r.db, id, false)
	if err != nil && !errors.Is(err, ErrPropertyNotFound) {
		logger.FromContext(ctx).Err(err).
			Str("func", "*propertyRepository.Get").
			Str("property_id", id.String()).
			Msg("error getting property")
	}
	return property, err
}

// List returns every property, whatever its status.
func (r *propertyRepository) List(ctx context.Context) ([]models.Property, error) {
	query, args, err := r.db.selectProperties().OrderBy("p.created_at", "p.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "*propertyRepository.List", query, args)
}

// ListFeatured returns every featured property, whatever its status.
func (r *propertyRepository) ListFeatured(ctx context.Context) ([]models.Property, error) {
	query, args, err := r.db.selectProperties().
		Where(sq.Eq{"p.is_featured": true}).
		OrderBy("p.created_at", "p.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "*propertyRepository.ListFeatured", query, args)
}

// Search returns AVAILABLE properties matching every non-nil filter field.
func (r *propertyRepository) Search(ctx context.Context, filter models.SearchFilter) ([]models.Property, error) {
	query, args, err := r.db.buildSearchPropertiesQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "*propertyRepository.Search", query, args)
}

// Update loads the property under a row lock, applies mutate and writes the
// result together with its images and amenities, all in one transaction.
// Identity, owner and creation time are kept from the stored row.
func (r *propertyRepository) Update(ctx context.Context, id uuid.UUID, mutate func(current models.Property) (models.Property, error)) (models.Property, error) {
	log := logger.FromContext(ctx)

	var updated models.Property
	err := r.db.inTx(ctx, "*propertyRepository.Update", false, func(tx *sql.Tx) error {
		current, err := r.get(ctx, tx, id, true)
		if err != nil {
			return err
		}

		next, err := mutate(current)
		if err != nil {
			return err
		}
		next.ID = current.ID
		next.OwnerID = current.OwnerID
		next.OwnerUsername = current.OwnerUsername
		next.OwnerName = current.OwnerName
		next.CreatedAt = current.CreatedAt

		query, args, err := r.db.builder.
			Update(tableProperties).
			SetMap(map[string]any{
				"title":          next.Title,
				"description":    next.Description,
				"type":           next.Type,
				"city":           next.City,
				"locality":       next.Locality,
				"price":          next.Price,
				"price_unit":     next.PriceUnit,
				"beds":           next.Beds,
				"baths":          next.Baths,
				"square_feet":    next.SquareFeet,
				"is_featured":    next.IsFeatured,
				"is_verified":    next.IsVerified,
				"contact_number": next.ContactNumber,
				"status":         next.Status,
				"updated_at":     next.UpdatedAt,
			}).
			Where(sq.Eq{"id": id.String()}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if err = r.deleteItems(ctx, tx, id); err != nil {
			return err
		}
		if err = r.insertItems(ctx, tx, next); err != nil {
			return err
		}

		updated = next
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*propertyRepository.Update").
			Str("property_id", id.String()).
			Msg("property was not updated")
		return models.Property{}, err
	}

	return updated, nil
}

// Delete loads the property under a row lock, runs check and removes the
// property with everything that references it.
func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID, check func(current models.Property) error) error {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, "*propertyRepository.Delete", false, func(tx *sql.Tx) error {
		current, err := r.get(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if err = check(current); err != nil {
			return err
		}

		if err = r.deleteItems(ctx, tx, id); err != nil {
			return err
		}

		for _, stmt := range []sq.DeleteBuilder{
			r.db.builder.Delete(tableFavorites).Where(sq.Eq{"property_id": id.String()}),
			r.db.builder.Delete(tableProperties).Where(sq.Eq{"id": id.String()}),
		} {
			query, args, buildErr := stmt.ToSql()
			if buildErr != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*propertyRepository.Delete").
			Str("property_id", id.String()).
			Msg("property was not deleted")
		return err
	}

	return nil
}

// get loads one property with its images and amenities through q.
func (r *propertyRepository) get(ctx context.Context, q queryer, id uuid.UUID, forUpdate bool) (models.Property, error) {
	builder := r.db.selectProperties().Where(sq.Eq{"p.id": id.String()})
	if forUpdate {
		if suffix := r.db.lockForUpdate("p"); suffix != "" {
			builder = builder.Suffix(suffix)
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Property{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	properties, err := r.query(ctx, q, query, args)
	if err != nil {
		return models.Property{}, err
	}
	if len(properties) == 0 {
		return models.Property{}, ErrPropertyNotFound
	}

	return properties[0], nil
}

func (r *propertyRepository) list(ctx context.Context, funcName, query string, args []any) ([]models.Property, error) {
	properties, err := r.query(ctx, r.db, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error listing properties")
		return nil, err
	}
	return properties, nil
}

// query runs a property SELECT and attaches images and amenities.
func (r *propertyRepository) query(ctx context.Context, q queryer, query string, args []any) ([]models.Property, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	properties := make([]models.Property, 0, 16)
	for rows.Next() {
		property, scanErr := scanProperty(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		properties = append(properties, property)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	// release the connection before the follow-up queries; SQLite runs on
	// a single one
	rows.Close()

	if err = r.attachItems(ctx, q, properties); err != nil {
		return nil, err
	}

	return properties, nil
}

func scanProperty(row rowScanner) (models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Type,
		&p.City,
		&p.Locality,
		&p.Price,
		&p.PriceUnit,
		&p.Beds,
		&p.Baths,
		&p.SquareFeet,
		&p.IsFeatured,
		&p.IsVerified,
		&p.OwnerID,
		&p.OwnerUsername,
		&p.OwnerName,
		&p.ContactNumber,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// attachItems fills Images and Amenities of every property in place.
func (r *propertyRepository) attachItems(ctx context.Context, q queryer, properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(properties))
	index := make(map[uuid.UUID]int, len(properties))
	for i, p := range properties {
		ids[i] = p.ID
		index[p.ID] = i
		properties[i].Images = []string{}
		properties[i].Amenities = []string{}
	}

	images, err := r.loadItems(ctx, q, tablePropertyImages, "url", ids)
	if err != nil {
		return err
	}
	amenities, err := r.loadItems(ctx, q, tablePropertyAmenities, "name", ids)
	if err != nil {
		return err
	}

	for id, urls := range images {
		properties[index[id]].Images = urls
	}
	for id, names := range amenities {
		properties[index[id]].Amenities = names
	}

	return nil
}

func (r *propertyRepository) loadItems(ctx context.Context, q queryer, table, column string, ids []uuid.UUID) (map[uuid.UUID][]string, error) {
	query, args, err := r.db.buildSelectPropertyItemsQuery(table, column, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]string, len(ids))
	for rows.Next() {
		var (
			propertyID uuid.UUID
			value      string
		)
		if err = rows.Scan(&propertyID, &value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items[propertyID] = append(items[propertyID], value)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (r *propertyRepository) insertItems(ctx context.Context, tx *sql.Tx, property models.Property) error {
	collections := []struct {
		table  string
		column string
		values []string
	}{
		{tablePropertyImages, "url", property.Images},
		{tablePropertyAmenities, "name", property.Amenities},
	}

	for _, c := range collections {
		if len(c.values) == 0 {
			continue
		}

		insert := r.db.builder.Insert(c.table).Columns("property_id", "position", c.column)
		for position, value := range c.values {
			insert = insert.Values(property.ID, position, value)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

func (r *propertyRepository) deleteItems(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	for _, table := range []string{tablePropertyImages, tablePropertyAmenities} {
		query, args, err := r.db.builder.Delete(table).Where(sq.Eq{"property_id": id.String()}).ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}
	return nil
}
