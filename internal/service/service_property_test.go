package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/mock"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
	"github.com/MKhiriev/rent-pe-easy/models"
)

func newTestPropertyService(t *testing.T) (*propertyService, *mock.MockPropertyRepository) {
	t.Helper()
	repo := mock.NewMockPropertyRepository(gomock.NewController(t))

	svc := NewPropertyService(repo, logger.Nop()).(*propertyService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func propertyRequest() models.PropertyRequest {
	return models.PropertyRequest{
		Title:     "Sea view flat",
		Type:      "apartment",
		City:      "Mumbai",
		Locality:  "Bandra",
		Price:     dec("10000"),
		Images:    []string{"https://img/1.jpg", "https://img/2.jpg"},
		Amenities: []string{"lift"},
	}
}

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestPropertyCreate_AppliesDefaults(t *testing.T) {
	svc, repo := newTestPropertyService(t)
	ctx := testContext()
	owner := testUser(t, "pw-123456")

	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ any, p models.Property) (models.Property, error) {
			return p, nil
		})

	created, err := svc.Create(ctx, propertyRequest(), owner.Principal())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, owner.UserID, created.OwnerID)
	assert.Equal(t, models.PropertyTypeApartment, created.Type)
	require.NotNil(t, created.PriceUnit)
	assert.Equal(t, "month", *created.PriceUnit)
	require.NotNil(t, created.Status)
	assert.Equal(t, models.StatusAvailable, *created.Status)
	assert.False(t, created.IsFeatured)
	assert.False(t, created.IsVerified)
	assert.Equal(t, fixedNow, created.CreatedAt)
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, created.Images)
}

func TestPropertyCreate_KeepsExplicitValues(t *testing.T) {
	svc, repo := newTestPropertyService(t)
	ctx := testContext()

	req := propertyRequest()
	req.PriceUnit = strPtr("day")
	req.Status = strPtr("RENTED")
	yes := true
	req.IsFeatured = &yes

	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ any, p models.Property) (models.Property, error) { return p, nil })

	created, err := svc.Create(ctx, req, testUser(t, "pw-123456").Principal())

	require.NoError(t, err)
	assert.Equal(t, "day", *created.PriceUnit)
	assert.Equal(t, "RENTED", *created.Status)
	assert.True(t, created.IsFeatured)
	assert.False(t, created.IsVerified)
}

func TestPropertyCreate_RejectsNonPositivePrice(t *testing.T) {
	svc, _ := newTestPropertyService(t)
	wrapped := NewPropertyValidationService().Wrap(svc)

	for _, price := range []string{"0", "-10"} {
		req := propertyRequest()
		req.Price = dec(price)

		_, err := wrapped.Create(testContext(), req, testUser(t, "pw-123456").Principal())

		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))

		var domainErr *Error
		require.ErrorAs(t, err, &domainErr)
		assert.Contains(t, domainErr.Fields, "price")
	}
}

func TestPropertyCreate_UnknownOwner(t *testing.T) {
	svc, repo := newTestPropertyService(t)
	ctx := testContext()

	repo.EXPECT().Create(ctx, gomock.Any()).Return(models.Property{}, store.ErrOwnerNotFound)

	_, err := svc.Create(ctx, propertyRequest(), models.Principal{UserID: uuid.New(), Username: "ghost"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

// ─────────────────────────────────────────────
// Get / List
// ─────────────────────────────────────────────

func TestPropertyGet(t *testing.T) {
	svc, repo := newTestPropertyService(t)
	ctx := testContext()
	p := testProperty(testUser(t, "pw-123456"))

	repo.EXPECT().Get(ctx, p.ID).Return(p, nil)
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	missing := uuid.New()
	repo.EXPECT().Get(ctx, missing).Return(models.Property{}, store.ErrPropertyNotFound)
	_, err = svc.Get(ctx, missing)
	require.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestPropertyListAllAndFeatured(t *testing.T) {
	svc, repo := newTestPropertyService(t)
	ctx := testContext()
	p := testProperty(testUser(t, "pw-123456"))

	repo.EXPECT().List(ctx).Return([]models.Property{p}, nil)
	repo.EXPECT().ListFeatured(ctx).Return(nil, errors.New("db down"))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.ListFeatured(ctx)
	assert.Equal(t, KindInternal, KindOf(err))
}

// ─────────────────────────────────────────────
// Search
// ─────────────────────────────────────────────

func TestParseSearchParams(t *testing.T) {
	apartment := models.PropertyTypeApartment

	tests := []struct {
		name   string
		params models.SearchParams
		want   models.SearchFilter
	}{
		{"empty", models.SearchParams{}, models.SearchFilter{}},
		{"city trimmed", models.SearchParams{City: "  Pune "}, models.SearchFilter{City: strPtr("Pune")}},
		{"known type any case", models.SearchParams{Type: "Apartment"}, models.SearchFilter{Type: &apartment}},
		{"unknown type ignored", models.SearchParams{Type: "invalid-type"}, models.SearchFilter{}},
		{"bounds", models.SearchParams{MinPrice: "5000", MaxPrice: "15000.50"},
			models.SearchFilter{MinPrice: dec("5000"), MaxPrice: dec("15000.50")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSearchParams(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want.City, got.City)
			assert.Equal(t, tt.want.Type, got.Type)
			if tt.want.MinPrice != nil {
				assert.True(t, tt.want.MinPrice.Equal(*got.MinPrice))
			} else {
				assert.Nil(t, got.MinPrice)
			}
			if tt.want.MaxPrice != nil {
				assert.True(t, tt.want.MaxPrice.Equal(*got.MaxPrice))
			} else {
				assert.Nil(t, got.MaxPrice)
			}
		})
	}
}

func TestParseSearchParams_MalformedPrice(t *testing.T) {
	_, err := ParseSearchParams(models.SearchParams{MinPrice: "cheap", MaxPrice: "1e"})

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindValidation, domainErr.Kind)
	assert.Contains(t, domainErr.Fields, "minPrice")
	assert.Contains(t, domainErr.Fields, "maxPrice")
}

func TestPropertySearch_UnknownTypeSameAsAbsent(t *testing.T) {
	svc, repo := newTestPropertyService(t)
	ctx := testContext()

	var filters []models.SearchFilter
	repo.EXPECT().Search(ctx, gomock.Any()).DoAndReturn(
		func(_ any, f models.SearchFilter) ([]models.Property, error) {
			filters = append(filters, f)
			return nil, nil
		}).Times(2)

	_, err := svc.Search(ctx, models.SearchParams{City: "Pune", Type: "invalid-type"})
	require.NoError(t, err)
	_, err = svc.Search(ctx, models.SearchParams{City: "Pune"})
	require.NoError(t, err)

	require.Len(t, filters, 2)
	assert.Equal(t, filters[1], filters[0])
}

// ─────────────────────────────────────────────
// Update / Delete
// ─────────────────────────────────────────────

// runMutation makes the repository mock behave like the real one: it feeds
// current into the callback and returns whatever the callback decides.
func runMutation(current models.Property) func(any, uuid.UUID, func(models.Property) (models.Property, error)) (models.Property, error) {
	return func(_ any, _ uuid.UUID, mutate func(models.Property) (models.Property, error)) (models.Property, error) {
		return mutate(current)
	}
}

func TestPropertyUpdate_ByOwner_FullReplace(t *testing.T) {
	svc, repo := newTestPropertyService(t)
	ctx := testContext()
	owner := testUser(t, "pw-123456")
	current := testProperty(owner)
	current.IsFeatured = true
	current.Beds = new(int)
	current.ContactNumber = strPtr("+91 1")

	repo.EXPECT().Update(ctx, current.ID, gomock.Any()).DoAndReturn(runMutation(current))

	req := propertyRequest()
	req.Price = dec("12000")
	updated, err := svc.Update(ctx, current.ID, req, owner.Principal())

	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(*dec("12000")))
	assert.True(t, updated.UpdatedAt.After(current.UpdatedAt))
	assert.Nil(t, updated.Beds, "omitted fields are cleared")
	assert.Nil(t, updated.ContactNumber)
	assert.Nil(t, updated.PriceUnit)
	assert.Nil(t, updated.Status)
	assert.True(t, updated.IsFeatured, "curation flags are not owner-editable")
	assert.Equal(t, current.OwnerID, updated.OwnerID)
}

func TestPropertyUpdate_ByNonOwner_Forbidden(t *testing.T) {
	svc, repo := newTestPropertyService(t)
	ctx := testContext()
	current := testProperty(testUser(t, "pw-123456"))

	repo.EXPECT().Update(ctx, current.ID, gomock.Any()).DoAndReturn(runMutation(current))

	admin := models.Principal{UserID: uuid.New(), Username: "root", Role: models.RoleAdmin}
	_, err := svc.Update(ctx, current.ID, propertyRequest(), admin)

	require.ErrorIs(t, err, ErrNotPropertyOwner)
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestPropertyUpdate_Missing_NotFound(t *testing.T) {
	svc, repo := newTestPropertyService(t)
	ctx := testContext()
	id := uuid.New()

	repo.EXPECT().Update(ctx, id, gomock.Any()).Return(models.Property{}, store.ErrPropertyNotFound)

	_, err := svc.Update(ctx, id, propertyRequest(), models.Principal{Username: "anyone"})
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertyDelete(t *testing.T) {
	owner := testUser(t, "pw-123456")
	current := testProperty(owner)

	check := func(_ any, _ uuid.UUID, fn func(models.Property) error) error {
		return fn(current)
	}

	tests := []struct {
		name  string
		actor models.Principal
		setup func(repo *mock.MockPropertyRepository)
		want  error
	}{
		{
			name:  "owner",
			actor: owner.Principal(),
			setup: func(repo *mock.MockPropertyRepository) {
				repo.EXPECT().Delete(gomock.Any(), current.ID, gomock.Any()).DoAndReturn(check)
			},
		},
		{
			name:  "non-owner",
			actor: models.Principal{Username: "mallory"},
			setup: func(repo *mock.MockPropertyRepository) {
				repo.EXPECT().Delete(gomock.Any(), current.ID, gomock.Any()).DoAndReturn(check)
			},
			want: ErrNotPropertyOwner,
		},
		{
			name:  "missing",
			actor: owner.Principal(),
			setup: func(repo *mock.MockPropertyRepository) {
				repo.EXPECT().Delete(gomock.Any(), current.ID, gomock.Any()).Return(store.ErrPropertyNotFound)
			},
			want: ErrPropertyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestPropertyService(t)
			tt.setup(repo)

			err := svc.Delete(testContext(), current.ID, tt.actor)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCanMutate(t *testing.T) {
	assert.True(t, CanMutate(models.Principal{Username: "asha"}, "asha"))
	assert.False(t, CanMutate(models.Principal{Username: "root", Role: models.RoleAdmin}, "asha"))
	assert.False(t, CanMutate(models.Principal{Username: "Asha"}, "asha"))
	assert.False(t, CanMutate(models.Principal{}, ""))
}
