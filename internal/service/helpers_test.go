package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/mock"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:         "test-sign-key",
		TokenIssuer:          "rent-pe-easy-test",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		PasswordHashCost:     bcrypt.MinCost,
		Version:              "1.0.0",
	}
}

type authMocks struct {
	users  *mock.MockUserRepository
	tokens *mock.MockRefreshTokenRepository
}

func newTestAuthService(t *testing.T) (*authService, authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := authMocks{
		users:  mock.NewMockUserRepository(ctrl),
		tokens: mock.NewMockRefreshTokenRepository(ctrl),
	}

	cfg := testAppConfig()
	svc := NewAuthService(m.users, m.tokens, NewTokenIssuer(cfg), cfg, logger.Nop()).(*authService)
	svc.now = func() time.Time { return fixedNow }

	return svc, m
}

func testUser(t *testing.T, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)

	return models.User{
		UserID:       uuid.New(),
		Username:     "asha",
		Email:        "asha@example.com",
		PasswordHash: hash,
		FullName:     "Asha Rao",
		Role:         models.RoleUser,
		Enabled:      true,
		CreatedAt:    fixedNow.Add(-time.Hour),
	}
}

func testProperty(owner models.User) models.Property {
	unit, status := models.DefaultPriceUnit, models.StatusAvailable
	return models.Property{
		ID:            uuid.New(),
		Title:         "Sea view flat",
		Type:          models.PropertyTypeApartment,
		City:          "Mumbai",
		Locality:      "Bandra",
		Price:         decimal.NewFromInt(10000),
		PriceUnit:     &unit,
		OwnerID:       owner.UserID,
		OwnerUsername: owner.Username,
		OwnerName:     owner.FullName,
		Status:        &status,
		CreatedAt:     fixedNow.Add(-time.Hour),
		UpdatedAt:     fixedNow.Add(-time.Hour),
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}
