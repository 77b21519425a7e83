// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/rent-pe-easy/models"
)

// Field names used by PropertyValidator.
const (
	FieldTitle      = "title"
	FieldType       = "type"
	FieldCity       = "city"
	FieldLocality   = "locality"
	FieldPrice      = "price"
	FieldBeds       = "beds"
	FieldBaths      = "baths"
	FieldSquareFeet = "squareFeet"
	FieldImages     = "images"
	FieldAmenities  = "amenities"
)

// PropertyValidator validates create and replace payloads.
type PropertyValidator struct {
}

func NewPropertyValidator() Validator {
	return &PropertyValidator{}
}

// Validate accepts models.PropertyRequest as a value or a pointer.
// Without fields, every rule is checked.
func (v *PropertyValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PropertyRequest:
		return v.validatePropertyRequest(value, fields...)
	case *models.PropertyRequest:
		return v.validatePropertyRequest(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *PropertyValidator) validatePropertyRequest(request models.PropertyRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{
			FieldTitle, FieldType, FieldCity, FieldLocality, FieldPrice,
			FieldBeds, FieldBaths, FieldSquareFeet, FieldImages, FieldAmenities,
		}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldTitle:
			requireText(errs, FieldTitle, request.Title, MsgTitleRequired)
		case FieldCity:
			requireText(errs, FieldCity, request.City, MsgCityRequired)
		case FieldLocality:
			requireText(errs, FieldLocality, request.Locality, MsgLocalityRequired)
		case FieldType:
			switch _, outcome := models.ParsePropertyType(request.Type); outcome {
			case models.PropertyTypeAbsent:
				errs.add(FieldType, MsgTypeRequired)
			case models.PropertyTypeUnrecognized:
				errs.add(FieldType, MsgTypeInvalid)
			}
		case FieldPrice:
			switch {
			case request.Price == nil:
				errs.add(FieldPrice, MsgPriceRequired)
			case !request.Price.IsPositive():
				errs.add(FieldPrice, MsgPricePositive)
			}
		case FieldBeds:
			nonNegative(errs, FieldBeds, request.Beds)
		case FieldBaths:
			nonNegative(errs, FieldBaths, request.Baths)
		case FieldSquareFeet:
			nonNegative(errs, FieldSquareFeet, request.SquareFeet)
		case FieldImages:
			noBlankEntries(errs, FieldImages, request.Images)
		case FieldAmenities:
			noBlankEntries(errs, FieldAmenities, request.Amenities)
		default:
			return ErrUnknownField
		}
	}

	return errs.errOrNil()
}

func requireText(errs FieldErrors, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs.add(field, msg)
	}
}

func nonNegative(errs FieldErrors, field string, value *int) {
	if value != nil && *value < 0 {
		errs.add(field, MsgNegativeCount)
	}
}

func noBlankEntries(errs FieldErrors, field string, values []string) {
	for _, s := range values {
		if strings.TrimSpace(s) == "" {
			errs.add(field, MsgBlankEntry)
			return
		}
	}
}
