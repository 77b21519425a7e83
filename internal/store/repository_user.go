package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record. The caller assigns UserID and
// CreatedAt.
//
// Error handling:
//   - unique violation on username → [ErrUsernameAlreadyExists].
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.insertUser(user)
	if err != nil {
		return models.User{}, err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error inserting user")
		return models.User{}, r.insertUserError(err)
	}

	return user, nil
}

// CreateUserWithToken inserts user and its first refresh token in one
// transaction. When either insert fails nothing is persisted. Errors map
// the same way as in [userRepository.CreateUser].
func (r *userRepository) CreateUserWithToken(ctx context.Context, user models.User, token models.RefreshToken) (models.User, error) {
	log := logger.FromContext(ctx)

	userQuery, userArgs, err := r.insertUser(user)
	if err != nil {
		return models.User{}, err
	}

	tokenQuery, tokenArgs, err := r.db.builder.
		Insert(tableRefreshTokens).
		Columns(refreshTokenColumns...).
		Values(token.ID, token.Token, token.UserID, token.ExpiresAt, token.CreatedAt).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.inTx(ctx, "*userRepository.CreateUserWithToken", false, func(tx *sql.Tx) error {
		if _, execErr := tx.ExecContext(ctx, userQuery, userArgs...); execErr != nil {
			return r.insertUserError(execErr)
		}
		if _, execErr := tx.ExecContext(ctx, tokenQuery, tokenArgs...); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUserWithToken").Str("username", user.Username).Msg("error inserting user with refresh token")
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) insertUser(user models.User) (string, []any, error) {
	query, args, err := r.db.builder.
		Insert(tableUsers).
		Columns(userColumns...).
		Values(user.UserID, user.Username, user.Email, user.PasswordHash, user.FullName,
			user.PhoneNumber, string(user.Role), user.Enabled, user.CreatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (r *userRepository) insertUserError(err error) error {
	if kind, name := r.db.constraint(err); kind == UniqueViolation {
		if strings.Contains(name, "email") {
			return ErrEmailAlreadyExists
		}
		return ErrUsernameAlreadyExists
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

// FindUserByUsername returns the user with the given username or
// [ErrNoUserWasFound].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByUsername", sq.Eq{"username": username})
}

// FindUserByID returns the user with the given id or [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", sq.Eq{"id": userID.String()})
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "*userRepository.ExistsByUsername", sq.Eq{"username": username})
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "*userRepository.ExistsByEmail", sq.Eq{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.selectUsers().Where(where).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.PhoneNumber,
		&user.Role,
		&user.Enabled,
		&user.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) exists(ctx context.Context, funcName string, where sq.Eq) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Select("COUNT(*)").From(tableUsers).Where(where).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", funcName).Msg("error counting users")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}
