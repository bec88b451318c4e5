package guard

//go:generate go run go.uber.org/mock/mockgen -source=./locker.go -destination=./mocks/locker_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"reservation/config"
	"reservation/infras/metrics"
	"reservation/infras/postgres"
	"reservation/shared/constant"
	"reservation/shared/failure"
)

const (
	StrategyAdvisory = "advisory"
	StrategyRowLock  = "row_lock"

	lockSavepoint = "room_lock"
)

var errNoTransaction = errors.New("room lock requires a transaction")

// Locker takes the exclusive per-room lock for the transaction carried by ctx.
// The lock is released when that transaction ends.
type Locker interface {
	Lock(ctx context.Context, roomID string) error
}

type postgresLocker struct {
	timeout  time.Duration
	metrics  *metrics.Metrics
	fallback atomic.Bool
}

func NewPostgresLocker(cfg *config.Config, m *metrics.Metrics) Locker {
	return &postgresLocker{
		timeout: cfg.Reservation.LockTimeout(),
		metrics: m,
	}
}

// LockKey maps a room to its advisory lock key.
func LockKey(roomID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("room:" + roomID))

	return int64(h.Sum64()) //nolint:gosec
}

func (l *postgresLocker) Lock(ctx context.Context, roomID string) error {
	tx, ok := postgres.TxFromContext(ctx)
	if !ok {
		return errNoTransaction
	}

	started := time.Now()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", l.timeout.Milliseconds())); err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}

	strategy := StrategyRowLock
	if !l.fallback.Load() {
		strategy = StrategyAdvisory
	}

	var err error

	if strategy == StrategyAdvisory {
		err = l.advisory(ctx, tx, roomID)
		if postgres.HasCode(err, constant.PqErrorCodeUndefinedFunction, constant.PqErrorCodeFeatureNotSupported) {
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+lockSavepoint); rbErr != nil {
				return fmt.Errorf("failed to roll back lock savepoint: %w", rbErr)
			}

			log.Warn().Err(err).Msg("advisory locks unavailable, locking room rows instead")
			l.fallback.Store(true)

			strategy = StrategyRowLock
		}
	}

	if strategy == StrategyRowLock {
		err = l.rowLock(ctx, tx, roomID)
	}

	if err != nil {
		if isLockTimeout(ctx, err) {
			l.metrics.LockTimeouts.Inc()
			log.Warn().Err(err).Str("room_id", roomID).Str("strategy", strategy).Msg("room lock wait timed out")

			return failure.LockTimeout // nolint:wrapcheck
		}

		return err
	}

	l.metrics.ObserveLockWait(strategy, time.Since(started))

	return nil
}

func (l *postgresLocker) advisory(ctx context.Context, tx postgres.Queryer, roomID string) error {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+lockSavepoint); err != nil {
		return fmt.Errorf("failed to create lock savepoint: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", LockKey(roomID)); err != nil {
		return err //nolint:wrapcheck
	}

	return nil
}

func (l *postgresLocker) rowLock(ctx context.Context, tx postgres.Queryer, roomID string) error {
	var id string

	err := tx.GetContext(ctx, &id, "SELECT id FROM rooms WHERE id = $1 FOR UPDATE", roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err != nil {
		return fmt.Errorf("failed to lock room row: %w", err)
	}

	return nil
}

func isLockTimeout(ctx context.Context, err error) bool {
	return postgres.HasCode(err, constant.PqErrorCodeLockNotAvailable, constant.PqErrorCodeQueryCanceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded)
}
