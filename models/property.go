package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Property statuses used by the catalog. Status is stored as free text so
// owners may use other values; only AVAILABLE has search semantics.
const (
	StatusAvailable = "AVAILABLE"

	DefaultPriceUnit = "month"
)

// Property is a rental listing.
//
// Owner identity is carried as an explicit foreign key plus the owner's
// username and full name, resolved by the store in the same query.
type Property struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Type        PropertyType    `json:"type"`
	City        string          `json:"city"`
	Locality    string          `json:"locality"`
	Price       decimal.Decimal `json:"price"`
	PriceUnit   *string         `json:"priceUnit"`
	Beds        *int            `json:"beds"`
	Baths       *int            `json:"baths"`
	SquareFeet  *int            `json:"squareFeet"`
	IsFeatured  bool            `json:"isFeatured"`
	IsVerified  bool            `json:"isVerified"`

	// Images holds image URLs in display order.
	Images []string `json:"images"`

	// Amenities holds amenity labels in display order.
	Amenities []string `json:"amenities"`

	OwnerID       uuid.UUID `json:"ownerId"`
	OwnerUsername string    `json:"-"`
	OwnerName     string    `json:"ownerName"`

	ContactNumber *string   `json:"contactNumber"`
	Status        *string   `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Property model.
func (p Property) TableName() string {
	return "properties"
}

// PropertyRequest is the payload used to create or fully replace a property.
// Pointer fields distinguish "absent" from zero values.
type PropertyRequest struct {
	Title         string           `json:"title"`
	Description   *string          `json:"description"`
	Type          string           `json:"type"`
	City          string           `json:"city"`
	Locality      string           `json:"locality"`
	Price         *decimal.Decimal `json:"price"`
	PriceUnit     *string          `json:"priceUnit"`
	Beds          *int             `json:"beds"`
	Baths         *int             `json:"baths"`
	SquareFeet    *int             `json:"squareFeet"`
	IsFeatured    *bool            `json:"isFeatured"`
	IsVerified    *bool            `json:"isVerified"`
	Images        []string         `json:"images"`
	Amenities     []string         `json:"amenities"`
	ContactNumber *string          `json:"contactNumber"`
	Status        *string          `json:"status"`
}

// SearchFilter narrows a property search. A nil field imposes no
// constraint; all non-nil fields are combined with AND.
type SearchFilter struct {
	// City matches as a case-insensitive substring.
	City *string

	// Type matches exactly.
	Type *PropertyType

	// MinPrice and MaxPrice are inclusive bounds.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// SearchParams are the raw, unparsed search inputs as received from a
// client. Blank strings mean "no filter" for that field.
type SearchParams struct {
	City     string
	Type     string
	MinPrice string
	MaxPrice string
}

// Favorite links a user to a bookmarked property.
type Favorite struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	PropertyID uuid.UUID
	CreatedAt  time.Time
}

// TableName returns the name of the database table
// associated with the Favorite model.
func (f Favorite) TableName() string {
	return "favorites"
}
