package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// newSQLiteServices wires the real services to a throwaway SQLite file.
func newSQLiteServices(t *testing.T) *Services {
	t.Helper()
	ctx := testContext()

	db, err := store.NewConnection(ctx, config.DB{
		Driver: config.DriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "rent.db"),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	cfg := &config.StructuredConfig{App: testAppConfig()}
	services, err := NewServices(store.NewStorages(db, logger.Nop()), cfg, logger.Nop())
	require.NoError(t, err)
	return services
}

func register(t *testing.T, s *Services, username string) models.Principal {
	t.Helper()
	result, err := s.AuthService.Register(testContext(), models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-pw",
		FullName: username,
	})
	require.NoError(t, err)
	return result.User.Principal()
}

func TestScenario_OwnershipAndSearch(t *testing.T) {
	s := newSQLiteServices(t)
	ctx := testContext()

	a := register(t, s, "owner-a")
	b := register(t, s, "other-b")

	req := propertyRequest()
	req.City = "Mumbai"
	req.Price = dec("10000")
	p, err := s.PropertyService.Create(ctx, req, a)
	require.NoError(t, err)
	require.Equal(t, models.StatusAvailable, *p.Status)

	_, err = s.PropertyService.Update(ctx, p.ID, req, b)
	require.ErrorIs(t, err, ErrNotPropertyOwner)

	req.Price = dec("12000")
	updated, err := s.PropertyService.Update(ctx, p.ID, req, a)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(*dec("12000")))
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))

	found, err := s.PropertyService.Search(ctx, models.SearchParams{City: "mumbai", MinPrice: "11000"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, p.ID, found[0].ID)

	found, err = s.PropertyService.Search(ctx, models.SearchParams{City: "mumbai", MaxPrice: "9000"})
	require.NoError(t, err)
	assert.Empty(t, found)

	require.ErrorIs(t, s.PropertyService.Delete(ctx, p.ID, b), ErrNotPropertyOwner)
	require.NoError(t, s.PropertyService.Delete(ctx, p.ID, a))
	require.ErrorIs(t, s.PropertyService.Delete(ctx, p.ID, a), ErrPropertyNotFound)
}

func TestScenario_SessionLifecycle(t *testing.T) {
	s := newSQLiteServices(t)
	ctx := testContext()

	registered := register(t, s, "asha")

	_, err := s.AuthService.Register(ctx, models.RegisterRequest{
		Username: "asha", Email: "other@example.com", Password: "secret-pw",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	first, err := s.AuthService.Login(ctx, models.LoginRequest{Username: "asha", Password: "secret-pw"})
	require.NoError(t, err)
	second, err := s.AuthService.Login(ctx, models.LoginRequest{Username: "asha", Password: "secret-pw"})
	require.NoError(t, err)

	_, err = s.AuthService.RefreshAccessToken(ctx, first.RefreshToken.Token)
	require.ErrorIs(t, err, ErrRefreshTokenNotFound, "rotated token must be dead")

	refreshed, err := s.AuthService.RefreshAccessToken(ctx, second.RefreshToken.Token)
	require.NoError(t, err)
	assert.Equal(t, second.RefreshToken.Token, refreshed.RefreshToken.Token)

	principal, err := s.AuthService.ResolvePrincipal(ctx, refreshed.AccessToken.SignedString)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, principal.UserID)

	require.NoError(t, s.AuthService.Logout(ctx, principal.UserID))
	require.NoError(t, s.AuthService.Logout(ctx, principal.UserID))

	_, err = s.AuthService.RefreshAccessToken(ctx, second.RefreshToken.Token)
	require.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestScenario_Favorites(t *testing.T) {
	s := newSQLiteServices(t)
	ctx := testContext()

	owner := register(t, s, "owner")
	fan := register(t, s, "fan")

	p, err := s.PropertyService.Create(ctx, propertyRequest(), owner)
	require.NoError(t, err)

	require.NoError(t, s.FavoriteService.Add(ctx, fan, p.ID))
	require.ErrorIs(t, s.FavoriteService.Add(ctx, fan, p.ID), ErrPropertyAlreadyFavorited)

	list, err := s.FavoriteService.List(ctx, fan)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	require.NoError(t, s.FavoriteService.Remove(ctx, fan, p.ID))
	require.ErrorIs(t, s.FavoriteService.Remove(ctx, fan, p.ID), ErrFavoriteNotFound)
}
