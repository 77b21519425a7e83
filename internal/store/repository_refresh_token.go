package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/models"
)

type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] over the
// "refresh_tokens" table.
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceForUser deletes the user's current token and inserts token in one
// transaction. refresh_tokens.user_id is unique, so of two racing
// replacements one fails with a unique violation; that transaction is
// retried and ends up replacing the winner's token.
func (r *refreshTokenRepository) ReplaceForUser(ctx context.Context, token models.RefreshToken) error {
	log := logger.FromContext(ctx)

	deleteQuery, deleteArgs, err := r.db.builder.
		Delete(tableRefreshTokens).
		Where(sq.Eq{"user_id": token.UserID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	insertQuery, insertArgs, err := r.db.builder.
		Insert(tableRefreshTokens).
		Columns(refreshTokenColumns...).
		Values(token.ID, token.Token, token.UserID, token.ExpiresAt, token.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.inTx(ctx, "*refreshTokenRepository.ReplaceForUser", true, func(tx *sql.Tx) error {
		if _, execErr := tx.ExecContext(ctx, deleteQuery, deleteArgs...); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		if _, execErr := tx.ExecContext(ctx, insertQuery, insertArgs...); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*refreshTokenRepository.ReplaceForUser").
			Str("user_id", token.UserID.String()).
			Msg("error replacing refresh token")
		return err
	}

	return nil
}

// FindByToken returns the stored token or [ErrRefreshTokenNotFound].
func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(refreshTokenColumns...).
		From(tableRefreshTokens).
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.RefreshToken
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&found.ID,
		&found.Token,
		&found.UserID,
		&found.ExpiresAt,
		&found.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return models.RefreshToken{}, ErrRefreshTokenNotFound
		}
		log.Err(err).Str("func", "*refreshTokenRepository.FindByToken").Msg("error scanning refresh token")
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

func (r *refreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.delete(ctx, "*refreshTokenRepository.DeleteByToken", sq.Eq{"token": token})
	return err
}

// DeleteByUserID is a no-op when the user has no token.
func (r *refreshTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.delete(ctx, "*refreshTokenRepository.DeleteByUserID", sq.Eq{"user_id": userID.String()})
	return err
}

func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.delete(ctx, "*refreshTokenRepository.DeleteExpired", sq.LtOrEq{"expires_at": now})
}

func (r *refreshTokenRepository) delete(ctx context.Context, funcName string, where sq.Sqlizer) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Delete(tableRefreshTokens).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error deleting refresh tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
