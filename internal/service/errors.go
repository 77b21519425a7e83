package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/rent-pe-easy/internal/app"
)

// Kind classifies a service error for the boundary layer. Every error
// returned by a service maps to exactly one Kind; see KindOf.
type Kind int

const (
	// KindInternal covers unanticipated lower-layer failures.
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindForbidden
	KindUnauthenticated
	// KindTokenExpired is reported for refresh tokens past their expiry.
	KindTokenExpired
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindTokenExpired:
		return "token_expired"
	default:
		return "internal"
	}
}

// Error is a domain error. Sentinels below are compared by identity, so
// errors.Is works for them even after wrapping.
type Error struct {
	Kind    Kind
	Message string

	// Fields carries per-field messages for KindValidation.
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidationError returns a KindValidation error carrying fields.
func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// KindOf returns the Kind of the first *Error in err's chain and
// KindInternal for anything else.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// internalError wraps a lower-layer failure that is not a domain outcome.
func internalError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

var (
	ErrUsernameTaken = newError(KindConflict, app.MsgUsernameTaken)
	ErrEmailTaken    = newError(KindConflict, app.MsgEmailTaken)

	ErrInvalidCredentials = newError(KindUnauthenticated, app.MsgInvalidCredentials)
	ErrAccountDisabled    = newError(KindUnauthenticated, app.MsgAccountDisabled)
	ErrInvalidAccessToken = newError(KindUnauthenticated, app.MsgInvalidAccessToken)

	ErrRefreshTokenNotFound = newError(KindNotFound, app.MsgInvalidRefreshToken)
	ErrRefreshTokenExpired  = newError(KindTokenExpired, app.MsgRefreshTokenExpired)

	ErrUserNotFound     = newError(KindNotFound, app.MsgUserNotFound)
	ErrPropertyNotFound = newError(KindNotFound, app.MsgPropertyNotFound)
	ErrNotPropertyOwner = newError(KindForbidden, app.MsgNotPropertyOwner)

	ErrPropertyAlreadyFavorited = newError(KindConflict, app.MsgAlreadyFavorited)
	ErrFavoriteNotFound         = newError(KindNotFound, app.MsgFavoriteNotFound)
)

// Plain errors that never cross the boundary as domain outcomes.
var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrTokenCreationFailed   = errors.New("token creation failed")
)
