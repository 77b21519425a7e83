package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput is matched by every FieldErrors value.
	ErrInvalidInput = errors.New("invalid input")
)

// Messages attached to individual fields.
const (
	MsgUsernameRequired = "Username is required"
	MsgUsernameLength   = "Username must be between 3 and 50 characters"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Email must be a valid address"
	MsgPasswordRequired = "Password is required"
	MsgPasswordLength   = "Password must be at least 6 characters"
	MsgRefreshRequired  = "Refresh token is required"

	MsgTitleRequired    = "Title is required"
	MsgTypeRequired     = "Property type is required"
	MsgTypeInvalid      = "Property type must be one of PG, ROOM, APARTMENT, FLAT, VILLA, COMMERCIAL"
	MsgCityRequired     = "City is required"
	MsgLocalityRequired = "Locality is required"
	MsgPriceRequired    = "Price is required"
	MsgPricePositive    = "Price must be positive"
	MsgNegativeCount    = "Must not be negative"
	MsgBlankEntry       = "Entries must not be blank"
)

// FieldErrors maps a JSON field name to a human readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrInvalidInput) true for any FieldErrors.
func (fe FieldErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

func (fe FieldErrors) add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

func (fe FieldErrors) errOrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
