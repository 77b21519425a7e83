package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PropertyType is the closed set of listing kinds.
type PropertyType string

const (
	PropertyTypePG         PropertyType = "PG"
	PropertyTypeRoom       PropertyType = "ROOM"
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeFlat       PropertyType = "FLAT"
	PropertyTypeVilla      PropertyType = "VILLA"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
)

// PropertyTypes lists every known variant in declaration order.
var PropertyTypes = []PropertyType{
	PropertyTypePG,
	PropertyTypeRoom,
	PropertyTypeApartment,
	PropertyTypeFlat,
	PropertyTypeVilla,
	PropertyTypeCommercial,
}

// ParseOutcome tells the caller how free text mapped onto [PropertyType].
type ParseOutcome int

const (
	// PropertyTypeAbsent means the input was empty.
	PropertyTypeAbsent ParseOutcome = iota
	// PropertyTypeRecognized means the input named a known variant.
	PropertyTypeRecognized
	// PropertyTypeUnrecognized means the input was non-empty but unknown.
	PropertyTypeUnrecognized
)

// ParsePropertyType maps s (case-insensitive, surrounding spaces ignored)
// onto a known variant. The outcome is explicit; callers decide what an
// unrecognized value means in their context.
func ParsePropertyType(s string) (PropertyType, ParseOutcome) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", PropertyTypeAbsent
	}

	candidate := PropertyType(strings.ToUpper(s))
	if candidate.Valid() {
		return candidate, PropertyTypeRecognized
	}

	return "", PropertyTypeUnrecognized
}

// Valid reports whether t is one of the known variants.
func (t PropertyType) Valid() bool {
	for _, known := range PropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Value implements [driver.Valuer].
func (t PropertyType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid property type %q", string(t))
	}
	return string(t), nil
}

// Scan implements [sql.Scanner].
func (t *PropertyType) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PropertyType", src)
	}

	parsed, outcome := ParsePropertyType(raw)
	if outcome != PropertyTypeRecognized {
		return fmt.Errorf("unknown property type %q stored in database", raw)
	}

	*t = parsed
	return nil
}

// UnmarshalJSON accepts any known variant, case-insensitive.
func (t *PropertyType) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	parsed, outcome := ParsePropertyType(raw)
	if outcome != PropertyTypeRecognized {
		return fmt.Errorf("unknown property type %q", raw)
	}

	*t = parsed
	return nil
}
