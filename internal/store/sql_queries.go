package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/models"
)

// Table and column names shared by the query builders.
const (
	tableUsers             = "users"
	tableRefreshTokens     = "refresh_tokens"
	tableProperties        = "properties"
	tablePropertyImages    = "property_images"
	tablePropertyAmenities = "property_amenities"
	tableFavorites         = "favorites"
)

var userColumns = []string{
	"id", "username", "email", "password_hash", "full_name", "phone_number", "role", "enabled", "created_at",
}

var refreshTokenColumns = []string{"id", "token", "user_id", "expires_at", "created_at"}

// propertyColumns are selected from "properties p JOIN users u".
var propertyColumns = []string{
	"p.id", "p.title", "p.description", "p.type", "p.city", "p.locality",
	"p.price", "p.price_unit", "p.beds", "p.baths", "p.square_feet",
	"p.is_featured", "p.is_verified", "p.owner_id", "u.username", "u.full_name",
	"p.contact_number", "p.status", "p.created_at", "p.updated_at",
}

func (db *DB) selectUsers() sq.SelectBuilder {
	return db.builder.Select(userColumns...).From(tableUsers)
}

// selectProperties selects listings together with their owner's identity.
func (db *DB) selectProperties() sq.SelectBuilder {
	return db.builder.
		Select(propertyColumns...).
		From(tableProperties + " p").
		Join(tableUsers + " u ON u.id = p.owner_id")
}

// buildSearchPropertiesQuery composes the AND of every supplied filter with
// the implicit AVAILABLE status constraint.
func (db *DB) buildSearchPropertiesQuery(filter models.SearchFilter) (string, []any, error) {
	where := sq.And{sq.Eq{"p.status": models.StatusAvailable}}

	if filter.City != nil {
		where = append(where, sq.Expr(`LOWER(p.city) LIKE ? ESCAPE '\'`, containsPattern(*filter.City)))
	}
	if filter.Type != nil {
		where = append(where, sq.Eq{"p.type": string(*filter.Type)})
	}
	if filter.MinPrice != nil {
		where = append(where, sq.GtOrEq{"p.price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		where = append(where, sq.LtOrEq{"p.price": *filter.MaxPrice})
	}

	return db.selectProperties().
		Where(where).
		OrderBy("p.created_at", "p.id").
		ToSql()
}

// likeEscaper escapes LIKE metacharacters so user input only ever matches
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is the lowered substring pattern for a LIKE ... ESCAPE '\'
// comparison.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// buildSelectPropertyItemsQuery selects the ordered image URLs or amenity
// labels of the given properties.
func (db *DB) buildSelectPropertyItemsQuery(table, column string, ids []uuid.UUID) (string, []any, error) {
	return db.builder.
		Select("property_id", column).
		From(table).
		Where(sq.Eq{"property_id": uuidStrings(ids)}).
		OrderBy("property_id", "position").
		ToSql()
}

// uuidStrings renders ids as strings. squirrel expands array values into
// IN lists, so uuid.UUID (a byte array) must never be passed to sq.Eq as is.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
