package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/app"
	"github.com/MKhiriev/rent-pe-easy/internal/validators"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// validationError converts a validator failure into a KindValidation
// error. Anything that is not a field report is a programming error and
// stays internal.
func validationError(err error) error {
	var fields validators.FieldErrors
	if errors.As(err, &fields) {
		return NewValidationError(app.MsgValidationFailed, fields)
	}
	return fmt.Errorf("error during validation: %w", err)
}

// AuthValidationService validates auth requests before they reach the
// wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{validator: validators.NewAuthValidator()}
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

func (v *AuthValidationService) Register(ctx context.Context, request models.RegisterRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.AuthResult{}, validationError(err)
	}
	return v.inner.Register(ctx, request)
}

func (v *AuthValidationService) Login(ctx context.Context, request models.LoginRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.AuthResult{}, validationError(err)
	}
	return v.inner.Login(ctx, request)
}

func (v *AuthValidationService) RefreshAccessToken(ctx context.Context, refreshToken string) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, models.RefreshRequest{RefreshToken: refreshToken}); err != nil {
		return models.AuthResult{}, validationError(err)
	}
	return v.inner.RefreshAccessToken(ctx, refreshToken)
}

func (v *AuthValidationService) Logout(ctx context.Context, userID uuid.UUID) error {
	return v.inner.Logout(ctx, userID)
}

func (v *AuthValidationService) ResolvePrincipal(ctx context.Context, accessToken string) (models.Principal, error) {
	return v.inner.ResolvePrincipal(ctx, accessToken)
}

// PropertyValidationService validates create and replace payloads.
type PropertyValidationService struct {
	inner     PropertyService
	validator validators.Validator
}

func NewPropertyValidationService() PropertyServiceWrapper {
	return &PropertyValidationService{validator: validators.NewPropertyValidator()}
}

func (v *PropertyValidationService) Wrap(wrapped PropertyService) PropertyService {
	v.inner = wrapped
	return v
}

func (v *PropertyValidationService) Create(ctx context.Context, request models.PropertyRequest, owner models.Principal) (models.Property, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Property{}, validationError(err)
	}
	return v.inner.Create(ctx, request, owner)
}

// Update validates the payload first. A malformed request therefore fails
// with a validation error even for a missing property or a non-owner.
func (v *PropertyValidationService) Update(ctx context.Context, id uuid.UUID, request models.PropertyRequest, actor models.Principal) (models.Property, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Property{}, validationError(err)
	}
	return v.inner.Update(ctx, id, request, actor)
}

func (v *PropertyValidationService) Get(ctx context.Context, id uuid.UUID) (models.Property, error) {
	return v.inner.Get(ctx, id)
}

func (v *PropertyValidationService) ListAll(ctx context.Context) ([]models.Property, error) {
	return v.inner.ListAll(ctx)
}

func (v *PropertyValidationService) ListFeatured(ctx context.Context) ([]models.Property, error) {
	return v.inner.ListFeatured(ctx)
}

func (v *PropertyValidationService) Search(ctx context.Context, params models.SearchParams) ([]models.Property, error) {
	return v.inner.Search(ctx, params)
}

func (v *PropertyValidationService) Delete(ctx context.Context, id uuid.UUID, actor models.Principal) error {
	return v.inner.Delete(ctx, id, actor)
}
