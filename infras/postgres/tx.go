package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./tx.go -destination=./mocks/tx_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"reservation/config"
	"reservation/shared/constant"
)

const defaultTxMaxRetry = 3

type txKey struct{}

// Transactor runs fn inside a write transaction carried by the context.
// Nested calls join the outer transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type transactor struct {
	db        *sqlx.DB
	isolation sql.IsolationLevel
	maxRetry  int
}

func NewTransactor(conn *Connection, cfg *config.Config) Transactor {
	maxRetry := cfg.DB.Postgres.TxMaxRetry
	if maxRetry <= 0 {
		maxRetry = defaultTxMaxRetry
	}

	isolation, err := ParseIsolation(cfg.DB.Postgres.TxIsolation)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to read committed transactions")
	}

	return &transactor{
		db:        conn.Write,
		isolation: isolation,
		maxRetry:  maxRetry,
	}
}

// TxFromContext returns the transaction started by WithinTx, if any.
func TxFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)

	return tx, ok && tx != nil
}

// ContextWithTx attaches tx to ctx.
func ContextWithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

var errUnsupportedIsolation = errors.New("unsupported transaction isolation")

// ParseIsolation maps the configured name to a level. Room admission takes
// its lock first and checks overlaps after, so every check must see rows
// committed during the lock wait. READ COMMITTED (the default) gives each
// statement a fresh snapshot. SERIALIZABLE keeps the lock-time snapshot and
// leans on 40001 aborts and the retry loop. REPEATABLE READ would read the
// lock-time snapshot without an abort and is refused, as are unknown names;
// both return the default level alongside the error.
func ParseIsolation(name string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case constant.Empty, "read_committed", "read committed":
		return sql.LevelReadCommitted, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelReadCommitted, fmt.Errorf("%w: %q", errUnsupportedIsolation, name)
	}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	var err error

	for attempt := 1; attempt <= t.maxRetry; attempt++ {
		err = t.run(ctx, fn)
		if err == nil || !IsRetryable(err) || ctx.Err() != nil {
			return err
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("transaction aborted by concurrent update, retrying")
	}

	return err
}

func (t *transactor) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := t.db.BeginTxx(ctx, &sql.TxOptions{Isolation: t.isolation})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(ContextWithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsRetryable reports serialization failures and deadlocks.
func IsRetryable(err error) bool {
	return HasCode(err, constant.PqErrorCodeSerializationFailure, constant.PqErrorCodeDeadlockDetected)
}

// HasCode reports whether err wraps a *pq.Error with one of the given SQLSTATE codes.
func HasCode(err error, codes ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	for _, code := range codes {
		if string(pqErr.Code) == code {
			return true
		}
	}

	return false
}
