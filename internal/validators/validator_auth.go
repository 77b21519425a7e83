package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/rent-pe-easy/models"
)

// Field names used by AuthValidator. They match the JSON names of the
// request bodies.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRefreshToken = "refreshToken"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
)

// AuthValidator validates register, login and refresh requests.
type AuthValidator struct {
}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

// Validate dispatches on the dynamic type of obj. Supported types are
// models.RegisterRequest, models.LoginRequest and models.RefreshRequest,
// as values or pointers.
func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)
	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)
	case models.RefreshRequest:
		return v.validateRefresh(value, fields...)
	case *models.RefreshRequest:
		return v.validateRefresh(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateRegister(request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldUsername:
			username := strings.TrimSpace(request.Username)
			switch n := utf8.RuneCountInString(username); {
			case n == 0:
				errs.add(FieldUsername, MsgUsernameRequired)
			case n < minUsernameLength || n > maxUsernameLength:
				errs.add(FieldUsername, MsgUsernameLength)
			}
		case FieldEmail:
			email := strings.TrimSpace(request.Email)
			if email == "" {
				errs.add(FieldEmail, MsgEmailRequired)
				continue
			}
			if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
				errs.add(FieldEmail, MsgEmailInvalid)
			}
		case FieldPassword:
			switch {
			case request.Password == "":
				errs.add(FieldPassword, MsgPasswordRequired)
			case utf8.RuneCountInString(request.Password) < minPasswordLength:
				errs.add(FieldPassword, MsgPasswordLength)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.errOrNil()
}

func (v *AuthValidator) validateLogin(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldUsername:
			if strings.TrimSpace(request.Username) == "" {
				errs.add(FieldUsername, MsgUsernameRequired)
			}
		case FieldPassword:
			if request.Password == "" {
				errs.add(FieldPassword, MsgPasswordRequired)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.errOrNil()
}

func (v *AuthValidator) validateRefresh(request models.RefreshRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRefreshToken}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldRefreshToken:
			if strings.TrimSpace(request.RefreshToken) == "" {
				errs.add(FieldRefreshToken, MsgRefreshRequired)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.errOrNil()
}
