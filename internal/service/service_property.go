package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/rent-pe-easy/internal/app"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

type propertyService struct {
	propertyRepository store.PropertyRepository

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

func NewPropertyService(propertyRepository store.PropertyRepository, logger *logger.Logger) PropertyService {
	return &propertyService{
		propertyRepository: propertyRepository,
		ids:                utils.NewUUIDGenerator(),
		now:                func() time.Time { return time.Now().UTC() },
		logger:             logger,
	}
}

// Create stores a new listing owned by owner. Absent price unit and status
// fall back to "month" and AVAILABLE; curation flags default to false.
func (p *propertyService) Create(ctx context.Context, request models.PropertyRequest, owner models.Principal) (models.Property, error) {
	now := p.now()

	property := applyRequest(models.Property{}, request)
	property.ID = p.ids.NewID()
	property.OwnerID = owner.UserID
	property.CreatedAt = now
	property.UpdatedAt = now
	property.IsFeatured = request.IsFeatured != nil && *request.IsFeatured
	property.IsVerified = request.IsVerified != nil && *request.IsVerified

	if property.PriceUnit == nil {
		unit := models.DefaultPriceUnit
		property.PriceUnit = &unit
	}
	if property.Status == nil {
		status := models.StatusAvailable
		property.Status = &status
	}

	created, err := p.propertyRepository.Create(ctx, property)
	if errors.Is(err, store.ErrOwnerNotFound) {
		return models.Property{}, ErrUserNotFound
	}
	if err != nil {
		return models.Property{}, internalError("creating property", err)
	}

	logger.FromContext(ctx).Info().
		Str("property_id", created.ID.String()).
		Str("owner", owner.Username).
		Msg("property created")

	return created, nil
}

func (p *propertyService) Get(ctx context.Context, id uuid.UUID) (models.Property, error) {
	property, err := p.propertyRepository.Get(ctx, id)
	if errors.Is(err, store.ErrPropertyNotFound) {
		return models.Property{}, ErrPropertyNotFound
	}
	if err != nil {
		return models.Property{}, internalError("getting property", err)
	}
	return property, nil
}

func (p *propertyService) ListAll(ctx context.Context) ([]models.Property, error) {
	properties, err := p.propertyRepository.List(ctx)
	if err != nil {
		return nil, internalError("listing properties", err)
	}
	return properties, nil
}

func (p *propertyService) ListFeatured(ctx context.Context) ([]models.Property, error) {
	properties, err := p.propertyRepository.ListFeatured(ctx)
	if err != nil {
		return nil, internalError("listing featured properties", err)
	}
	return properties, nil
}

// Search parses params into a filter and runs it. An unrecognized type is
// dropped from the filter instead of failing the request. Malformed price
// bounds are a validation failure.
func (p *propertyService) Search(ctx context.Context, params models.SearchParams) ([]models.Property, error) {
	filter, err := ParseSearchParams(params)
	if err != nil {
		return nil, err
	}

	properties, err := p.propertyRepository.Search(ctx, filter)
	if err != nil {
		return nil, internalError("searching properties", err)
	}
	return properties, nil
}

// Update replaces every owner-editable field of the property with the
// request's values. Fields absent from the request become empty. The
// ownership check and the write happen in the same transaction.
func (p *propertyService) Update(ctx context.Context, id uuid.UUID, request models.PropertyRequest, actor models.Principal) (models.Property, error) {
	updated, err := p.propertyRepository.Update(ctx, id, func(current models.Property) (models.Property, error) {
		if err := authorizeOwner(actor, current); err != nil {
			return models.Property{}, err
		}

		next := applyRequest(current, request)
		next.UpdatedAt = p.now()
		if !next.UpdatedAt.After(current.UpdatedAt) {
			next.UpdatedAt = current.UpdatedAt.Add(time.Microsecond)
		}
		return next, nil
	})
	switch {
	case errors.Is(err, store.ErrPropertyNotFound):
		return models.Property{}, ErrPropertyNotFound
	case errors.Is(err, ErrNotPropertyOwner):
		logger.FromContext(ctx).Warn().
			Str("property_id", id.String()).
			Str("actor", actor.Username).
			Msg("update by non-owner rejected")
		return models.Property{}, ErrNotPropertyOwner
	case err != nil:
		return models.Property{}, internalError("updating property", err)
	}

	return updated, nil
}

func (p *propertyService) Delete(ctx context.Context, id uuid.UUID, actor models.Principal) error {
	err := p.propertyRepository.Delete(ctx, id, func(current models.Property) error {
		return authorizeOwner(actor, current)
	})
	switch {
	case errors.Is(err, store.ErrPropertyNotFound):
		return ErrPropertyNotFound
	case errors.Is(err, ErrNotPropertyOwner):
		logger.FromContext(ctx).Warn().
			Str("property_id", id.String()).
			Str("actor", actor.Username).
			Msg("delete by non-owner rejected")
		return ErrNotPropertyOwner
	case err != nil:
		return internalError("deleting property", err)
	}

	logger.FromContext(ctx).Info().Str("property_id", id.String()).Msg("property deleted")
	return nil
}

// applyRequest overwrites the owner-editable fields of base with request.
// Curation flags, identity, owner and timestamps are left to the caller.
func applyRequest(base models.Property, request models.PropertyRequest) models.Property {
	propertyType, _ := models.ParsePropertyType(request.Type)

	base.Title = strings.TrimSpace(request.Title)
	base.Description = request.Description
	base.Type = propertyType
	base.City = strings.TrimSpace(request.City)
	base.Locality = strings.TrimSpace(request.Locality)
	if request.Price != nil {
		base.Price = *request.Price
	} else {
		base.Price = decimal.Zero
	}
	base.PriceUnit = request.PriceUnit
	base.Beds = request.Beds
	base.Baths = request.Baths
	base.SquareFeet = request.SquareFeet
	base.Images = append([]string(nil), request.Images...)
	base.Amenities = append([]string(nil), request.Amenities...)
	base.ContactNumber = request.ContactNumber
	base.Status = request.Status

	return base
}

// ParseSearchParams turns raw search input into a filter.
//
// Blank values impose no constraint. The type is matched against the known
// variants and silently ignored when unrecognized. Prices must be decimal
// numbers.
func ParseSearchParams(params models.SearchParams) (models.SearchFilter, error) {
	var filter models.SearchFilter

	if city := strings.TrimSpace(params.City); city != "" {
		filter.City = &city
	}

	if propertyType, outcome := models.ParsePropertyType(params.Type); outcome == models.PropertyTypeRecognized {
		filter.Type = &propertyType
	}

	fields := map[string]string{}
	filter.MinPrice = parsePrice(params.MinPrice, "minPrice", fields)
	filter.MaxPrice = parsePrice(params.MaxPrice, "maxPrice", fields)
	if len(fields) > 0 {
		return models.SearchFilter{}, NewValidationError(app.MsgInvalidSearchFilter, fields)
	}

	return filter, nil
}

func parsePrice(raw, field string, fields map[string]string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		fields[field] = app.MsgMustBeDecimal
		return nil
	}
	return &price
}
