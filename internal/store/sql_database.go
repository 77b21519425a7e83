// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/migrations"
)

// Dialect names the SQL flavour spoken by the underlying connection.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

const (
	txMaxRetries  = 3
	txRetryBase   = 20 * time.Millisecond
	txRetryMaxGap = 500 * time.Millisecond
)

// DB wraps *sql.DB with the dialect-specific pieces the repositories need:
// a squirrel statement builder with the right placeholder format and an
// error classifier for the driver in use.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnection opens the database selected by cfg.Driver.
func NewConnection(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func newDB(conn *sql.DB, dialect Dialect, classificator ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classificator,
		logger:             log,
	}
}

// Dialect reports the SQL flavour of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// lockForUpdate returns the row-lock suffix for the dialect. SQLite
// serialises writers on the database file and has no row locks.
func (db *DB) lockForUpdate(table string) string {
	if db.dialect == DialectPostgres {
		return "FOR UPDATE OF " + table
	}
	return ""
}

// inTx runs fn inside a transaction and commits it. A transaction that
// fails with a retryable driver error or the unique violation named by
// retryOnUnique is rolled back and attempted again, up to txMaxRetries
// times.
func (db *DB) inTx(ctx context.Context, funcName string, retryOnUnique bool, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	backoff := retry.WithMaxRetries(txMaxRetries, retry.WithCappedDuration(txRetryMaxGap, retry.NewExponential(txRetryBase)))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := db.runTx(ctx, fn)
		if err == nil {
			return nil
		}

		if db.shouldRetry(err, retryOnUnique) {
			log.Warn().Err(err).Str("func", funcName).Msg("transaction failed, retrying")
			return retry.RetryableError(err)
		}

		return err
	})
}

func (db *DB) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (db *DB) shouldRetry(err error, retryOnUnique bool) bool {
	if db.errorClassificator == nil {
		return false
	}

	if db.errorClassificator.Classify(err) == Retryable {
		return true
	}

	if retryOnUnique {
		kind, _ := db.errorClassificator.Constraint(err)
		return kind == UniqueViolation
	}

	return false
}

// constraint classifies err with the connection's classificator.
func (db *DB) constraint(err error) (ConstraintKind, string) {
	if db.errorClassificator == nil || err == nil {
		return NoViolation, ""
	}
	return db.errorClassificator.Constraint(err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
