package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// ─────────────────────────────────────────────
// shared fixtures
// ─────────────────────────────────────────────

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// newMockDB returns a postgres-flavoured DB over sqlmock.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return newDB(conn, DialectPostgres, NewPostgresErrorClassifier(), logger.Nop()), mock
}

// newSQLiteDB opens a migrated SQLite database in a temp directory.
func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	cfg := config.DB{
		Driver: config.DriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "rent.db"),
	}

	db, err := NewConnection(testContext(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func seedUser(t *testing.T, repo UserRepository, username string) models.User {
	t.Helper()
	user, err := repo.CreateUser(testContext(), models.User{
		UserID:       uuid.Must(uuid.NewV7()),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		FullName:     "Full " + username,
		Role:         models.RoleUser,
		Enabled:      true,
		CreatedAt:    now(),
	})
	require.NoError(t, err)
	return user
}

func newProperty(owner models.User, title, city string, typ models.PropertyType, price int64) models.Property {
	ts := now()
	return models.Property{
		ID:         uuid.Must(uuid.NewV7()),
		Title:      title,
		Type:       typ,
		City:       city,
		Locality:   "Center",
		Price:      decimal.NewFromInt(price),
		PriceUnit:  strPtr(models.DefaultPriceUnit),
		Status:     strPtr(models.StatusAvailable),
		OwnerID:    owner.UserID,
		Images:     []string{},
		Amenities:  []string{},
		CreatedAt:  ts,
		UpdatedAt:  ts,
		Beds:       intPtr(2),
		IsFeatured: false,
	}
}
