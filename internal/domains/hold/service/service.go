package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"reservation/config"
	"reservation/infras/metrics"
	"reservation/infras/otel"
	"reservation/infras/postgres"
	bookingModel "reservation/internal/domains/booking/model"
	"reservation/internal/domains/hold/model"
	"reservation/internal/domains/hold/model/dto"
	"reservation/internal/domains/hold/repository"
	roomRepo "reservation/internal/domains/room/repository"
	"reservation/internal/guard"
	"reservation/shared"
	"reservation/shared/cache"
	"reservation/shared/constant"
	"reservation/shared/failure"
	"reservation/shared/interval"
)

type Hold interface {
	// Acquire claims the interval for userID. A caller already holding an
	// overlapping interval of the room gets that hold back, reshaped and
	// refreshed, under the same token. A zero TTLMinutes means the configured
	// default; a negative one is InvalidInterval.
	Acquire(ctx context.Context, userID string, req dto.AcquireHoldRequest) (dto.HoldResponse, error)
	// Renew reports false when the hold is unknown or already expired. It
	// takes the room lock. ttlMinutes follows the same rule as Acquire.
	Renew(ctx context.Context, token string, ttlMinutes int) (bool, error)
	// Release is idempotent.
	Release(ctx context.Context, token string) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
	// ExistsActiveOverlap is advisory. It takes no lock.
	ExistsActiveOverlap(ctx context.Context, roomID string, period interval.Interval) (bool, error)
}

type serviceImpl struct {
	repo     repository.Hold
	roomRepo roomRepo.Room
	guard    guard.Guard
	tx       postgres.Transactor
	cfg      *config.Config
	cache    cache.RedisCache
	metrics  *metrics.Metrics
	otel     otel.Otel
}

func New(
	repo repository.Hold,
	roomRepo roomRepo.Room,
	guard guard.Guard,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Hold {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		guard:    guard,
		tx:       tx,
		cfg:      cfg,
		cache:    cache,
		metrics:  metrics,
		otel:     otel,
	}
}

func (s *serviceImpl) ttl(minutes int) (time.Duration, error) {
	switch {
	case minutes < 0:
		return 0, failure.InvalidInterval
	case minutes == 0:
		return s.cfg.Reservation.HoldTTL(), nil
	default:
		return time.Duration(minutes) * time.Minute, nil
	}
}

func (s *serviceImpl) Acquire(ctx context.Context, userID string, req dto.AcquireHoldRequest) (res dto.HoldResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hold.Acquire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	period, err := interval.New(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	ttl, err := s.ttl(req.TTLMinutes)
	if err != nil {
		return res, err
	}

	exist, err := s.roomRepo.Exist(ctx, req.RoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	var (
		hold   model.Hold
		merged bool
	)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		merged = false

		if err := s.guard.Acquire(ctx, req.RoomID); err != nil {
			return err //nolint:wrapcheck
		}

		now, err := s.repo.Now(ctx)
		if err != nil {
			return err //nolint:wrapcheck
		}

		booked, err := s.guard.HasOverlap(ctx, guard.OverlapQuery{
			RoomID:           req.RoomID,
			Period:           period,
			BlockingStatuses: bookingModel.BlockingStatuses(),
			IncludeSoftHold:  true,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		if booked {
			return failure.SlotConflict
		}

		active, err := s.repo.FindActiveOverlap(ctx, model.OverlapFilter{RoomID: req.RoomID, Period: period, Now: now})
		if err != nil {
			return err //nolint:wrapcheck
		}

		own := make([]model.Hold, 0, len(active))

		for _, h := range active {
			if h.UserID != userID {
				return failure.HeldByAnother
			}

			own = append(own, h)
		}

		if len(own) == 0 {
			hold = model.Hold{
				Token:      uuid.NewString(),
				RoomID:     req.RoomID,
				UserID:     userID,
				CheckIn:    period.Start,
				CheckOut:   period.End,
				CreatedAt:  now,
				ExpiresAt:  now.Add(ttl),
				ModifiedAt: now,
			}

			return s.repo.Insert(ctx, hold) //nolint:wrapcheck
		}

		hold = own[0]
		hold.CheckIn = period.Start
		hold.CheckOut = period.End
		hold.ExpiresAt = now.Add(ttl)
		hold.ModifiedAt = now
		merged = true

		if err := s.repo.Reshape(ctx, hold.Token, hold); err != nil {
			return err //nolint:wrapcheck
		}

		for _, extra := range own[1:] {
			if err := s.repo.Delete(ctx, extra.Token); err != nil {
				return err //nolint:wrapcheck
			}
		}

		return nil
	})
	if err != nil {
		return res, s.acquireFailed(req.RoomID, err)
	}

	if merged {
		s.metrics.HoldResult(metrics.ResultMerged)
	} else {
		s.metrics.HoldResult(metrics.ResultCreated)
	}

	shared.InvalidateAvailability(ctx, s.cache, req.RoomID)

	res.FromModel(hold)

	return res, nil
}

func (s *serviceImpl) acquireFailed(roomID string, err error) error {
	switch {
	case errors.Is(err, failure.HeldByAnother):
		s.metrics.HoldResult(metrics.ResultHeldByAnother)
		log.Info().Str("room_id", roomID).Msg("hold refused, interval held by another user")

		return err
	case errors.Is(err, failure.SlotConflict):
		s.metrics.HoldResult(metrics.ResultSlotConflict)
		log.Info().Str("room_id", roomID).Msg("hold refused, interval already booked")

		return err
	case errors.Is(err, failure.LockTimeout):
		s.metrics.HoldResult(metrics.ResultLockTimeout)

		return err
	}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	s.metrics.HoldResult(metrics.ResultError)
	log.Error().Err(err).Str("room_id", roomID).Msg("failed to acquire hold")

	return fmt.Errorf("failed to acquire hold: %w", err)
}

func (s *serviceImpl) Renew(ctx context.Context, token string, ttlMinutes int) (renewed bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hold.Renew")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ttl, err := s.ttl(ttlMinutes)
	if err != nil {
		return false, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		renewed = false

		hold, err := s.repo.GetByToken(ctx, token)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if hold.Token == constant.Empty {
			return nil
		}

		// expiry is read and extended under the room lock.
		if err := s.guard.Acquire(ctx, hold.RoomID); err != nil {
			return err //nolint:wrapcheck
		}

		now, err := s.repo.Now(ctx)
		if err != nil {
			return err //nolint:wrapcheck
		}

		renewed, err = s.repo.Extend(ctx, token, now, now.Add(ttl))

		return err //nolint:wrapcheck
	})
	if err != nil {
		if errors.Is(err, failure.LockTimeout) {
			return false, err
		}

		log.Error().Err(err).Str("token", token).Msg("failed to renew hold")

		return false, fmt.Errorf("failed to renew hold: %w", err)
	}

	if !renewed {
		log.Debug().Str("token", token).Msg("hold not renewed, unknown or expired")
	}

	return renewed, nil
}

func (s *serviceImpl) Release(ctx context.Context, token string) (_ bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hold.Release")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hold, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hold")

		return false, fmt.Errorf("failed to release hold: %w", err)
	}

	if hold.Token == constant.Empty {
		return true, nil
	}

	if err = s.repo.Delete(ctx, token); err != nil {
		log.Error().Err(err).Msg("failed to delete hold")

		return false, fmt.Errorf("failed to release hold: %w", err)
	}

	shared.InvalidateAvailability(ctx, s.cache, hold.RoomID)

	return true, nil
}

func (s *serviceImpl) PurgeExpired(ctx context.Context) (purged int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hold.PurgeExpired")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now, err := s.repo.Now(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read database clock")

		return 0, fmt.Errorf("failed to purge holds: %w", err)
	}

	purged, err = s.repo.DeleteExpired(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete expired holds")

		return 0, fmt.Errorf("failed to purge holds: %w", err)
	}

	s.metrics.Purged(purged)

	if purged > 0 {
		log.Info().Int64("purged", purged).Msg("expired holds purged")
	}

	return purged, nil
}

func (s *serviceImpl) ExistsActiveOverlap(ctx context.Context, roomID string, period interval.Interval) (_ bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hold.ExistsActiveOverlap")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now, err := s.repo.Now(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read database clock: %w", err)
	}

	holds, err := s.repo.FindActiveOverlap(ctx, model.OverlapFilter{RoomID: roomID, Period: period, Now: now})
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping holds")

		return false, fmt.Errorf("failed to find overlapping holds: %w", err)
	}

	return len(holds) > 0, nil
}
