package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"reservation/config"
	"reservation/infras/metrics"
	"reservation/infras/otel"
	"reservation/infras/postgres"
	"reservation/internal/domains/booking/model"
	"reservation/internal/domains/booking/model/dto"
	"reservation/internal/domains/booking/repository"
	holdModel "reservation/internal/domains/hold/model"
	holdRepo "reservation/internal/domains/hold/repository"
	roomRepo "reservation/internal/domains/room/repository"
	"reservation/internal/guard"
	"reservation/shared"
	"reservation/shared/cache"
	"reservation/shared/clock"
	"reservation/shared/constant"
	gDto "reservation/shared/dto"
	"reservation/shared/failure"
	"reservation/shared/interval"
)

const defaultAvailabilityTTL = 30

type Booking interface {
	// Create admits a booking in the awaiting-deposit state and returns its id.
	// The caller's own overlapping holds are consumed by the booking.
	Create(ctx context.Context, userID string, req dto.CreateBookingRequest) (string, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	ListByUser(ctx context.Context, userID string, params gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	// CheckAvailability is advisory. It takes no lock and may be served from cache.
	CheckAvailability(ctx context.Context, roomID string, period interval.Interval) (bool, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	holdRepo holdRepo.Hold
	guard    guard.Guard
	tx       postgres.Transactor
	clock    clock.Clock
	cfg      *config.Config
	cache    cache.RedisCache
	metrics  *metrics.Metrics
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	holdRepo holdRepo.Hold,
	guard guard.Guard,
	tx postgres.Transactor,
	clk clock.Clock,
	cfg *config.Config,
	cache cache.RedisCache,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		holdRepo: holdRepo,
		guard:    guard,
		tx:       tx,
		clock:    clk,
		cfg:      cfg,
		cache:    cache,
		metrics:  metrics,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, userID string, req dto.CreateBookingRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	period, err := interval.New(req.CheckIn, req.CheckOut)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	exist, err := s.roomRepo.Exist(ctx, req.RoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return "", fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return "", failure.NotFound("room not found") // nolint:wrapcheck
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.guard.Acquire(ctx, req.RoomID); err != nil {
			return err //nolint:wrapcheck
		}

		booking := req.ToModel(userID, s.clock.Now())

		booked, err := s.guard.HasOverlap(ctx, guard.OverlapQuery{
			RoomID:           booking.RoomID,
			Period:           period,
			BlockingStatuses: model.BlockingStatuses(),
			IncludeSoftHold:  true,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		if booked {
			return failure.SlotConflict
		}

		held, err := s.guard.HasForeignHold(ctx, booking.RoomID, userID, period)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if held {
			return failure.SlotConflict
		}

		if err := s.repo.Insert(ctx, booking); err != nil {
			return err //nolint:wrapcheck
		}

		id = booking.ID

		return s.consumeOwnHolds(ctx, booking.RoomID, userID, period)
	})
	if err != nil {
		return "", s.createFailed(req.RoomID, err)
	}

	s.metrics.AdmissionResult(metrics.ResultAdmitted)
	log.Info().Str("booking_id", id).Str("room_id", req.RoomID).Msg("booking admitted")

	shared.InvalidateAvailability(ctx, s.cache, req.RoomID)

	return id, nil
}

// consumeOwnHolds drops the caller's holds the new booking supersedes.
func (s *serviceImpl) consumeOwnHolds(ctx context.Context, roomID, userID string, period interval.Interval) error {
	now, err := s.holdRepo.Now(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	holds, err := s.holdRepo.FindActiveOverlap(ctx, holdModel.OverlapFilter{RoomID: roomID, Period: period, Now: now})
	if err != nil {
		return err //nolint:wrapcheck
	}

	for _, hold := range holds {
		if hold.UserID != userID {
			continue
		}

		if err := s.holdRepo.Delete(ctx, hold.Token); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) createFailed(roomID string, err error) error {
	switch {
	case errors.Is(err, failure.SlotConflict):
		s.metrics.AdmissionResult(metrics.ResultSlotConflict)
		log.Info().Str("room_id", roomID).Msg("booking refused, interval unavailable")

		return err
	case errors.Is(err, failure.LockTimeout):
		s.metrics.AdmissionResult(metrics.ResultLockTimeout)

		return err
	}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	s.metrics.AdmissionResult(metrics.ResultError)
	log.Error().Err(err).Str("room_id", roomID).Msg("failed to create booking")

	return fmt.Errorf("failed to create booking: %w", err)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CachePrefixBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListByUser(ctx context.Context, userID string, params gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var filter *model.Status

	if status != constant.Empty {
		parsed, err := model.ParseStatus(status)
		if err != nil {
			return res, err //nolint:wrapcheck
		}

		filter = &parsed
	}

	bookings, total, err := s.repo.ListByUser(ctx, userID, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return res, fmt.Errorf("failed to list bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID string, period interval.Interval) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.AvailabilityCacheKey(ctx, s.cache, roomID,
		strconv.FormatInt(period.Start.Unix(), 10), strconv.FormatInt(period.End.Unix(), 10))

	if err = s.cache.Get(ctx, cacheKey, &available); err == nil {
		return available, nil
	}

	booked, err := s.guard.HasOverlap(ctx, guard.OverlapQuery{
		RoomID:           roomID,
		Period:           period,
		BlockingStatuses: model.BlockingStatuses(),
		IncludeSoftHold:  true,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	available = !booked

	if available {
		now, err := s.holdRepo.Now(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to check availability: %w", err)
		}

		holds, err := s.holdRepo.FindActiveOverlap(ctx, holdModel.OverlapFilter{RoomID: roomID, Period: period, Now: now})
		if err != nil {
			log.Error().Err(err).Msg("failed to check hold overlap")

			return false, fmt.Errorf("failed to check availability: %w", err)
		}

		available = len(holds) == 0
	}

	ttl := s.cfg.Cache.AvailabilityTTL
	if ttl <= 0 {
		ttl = defaultAvailabilityTTL
	}

	if err := s.cache.Save(ctx, cacheKey, available, ttl); err != nil {
		log.Warn().Err(err).Msg("failed to save availability to cache")
	}

	return available, nil
}
