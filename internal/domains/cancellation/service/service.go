package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"reservation/config"
	"reservation/infras/kafka"
	"reservation/infras/metrics"
	"reservation/infras/otel"
	"reservation/infras/postgres"
	bookingModel "reservation/internal/domains/booking/model"
	bookingRepo "reservation/internal/domains/booking/repository"
	"reservation/internal/domains/cancellation/model"
	"reservation/internal/domains/cancellation/model/dto"
	"reservation/internal/domains/cancellation/refund"
	"reservation/internal/domains/cancellation/repository"
	paymentRepo "reservation/internal/domains/payment/repository"
	"reservation/shared"
	"reservation/shared/cache"
	"reservation/shared/clock"
	"reservation/shared/constant"
	"reservation/shared/failure"
)

type Cancellation interface {
	// Cancel prices the cancellation, records it and marks the booking
	// cancelled. The refund itself is requested from the payment processor
	// once the change is committed.
	Cancel(ctx context.Context, bookingID, reason, userID string) (dto.CancellationResponse, error)
	// UpdateStatus applies a payment processor report. Unknown ids and
	// repeated reports are accepted without effect.
	UpdateStatus(ctx context.Context, id, status, note string) error
	Get(ctx context.Context, id string) (dto.CancellationResponse, error)
}

type serviceImpl struct {
	repo        repository.Cancellation
	bookingRepo bookingRepo.Booking
	paymentRepo paymentRepo.Payment
	tx          postgres.Transactor
	kafka       kafka.Client
	clock       clock.Clock
	cfg         *config.Config
	cache       cache.RedisCache
	metrics     *metrics.Metrics
	otel        otel.Otel
}

func New(
	repo repository.Cancellation,
	bookingRepo bookingRepo.Booking,
	paymentRepo paymentRepo.Payment,
	tx postgres.Transactor,
	kafka kafka.Client,
	clk clock.Clock,
	cfg *config.Config,
	cache cache.RedisCache,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Cancellation {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		tx:          tx,
		kafka:       kafka,
		clock:       clk,
		cfg:         cfg,
		cache:       cache,
		metrics:     metrics,
		otel:        otel,
	}
}

func checkCancellable(booking bookingModel.Booking) error {
	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status == bookingModel.StatusCancelled {
		return failure.AlreadyCancelled
	}

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, bookingID, reason, userID string) (res dto.CancellationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".cancellation.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if err = checkCancellable(booking); err != nil {
		return res, err
	}

	paid, err := s.paymentRepo.GetTotalPaid(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get total paid")

		return res, err //nolint:wrapcheck
	}

	var cancellation model.Cancellation

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.bookingRepo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err := checkCancellable(locked); err != nil {
			return err
		}

		now := s.clock.Now()
		quote := refund.Calculate(locked.CheckIn, now, paid, locked.ProvisionalTotal)
		cancellation = dto.NewCancellation(bookingID, userID, reason, quote, now)

		if err := s.repo.Insert(ctx, cancellation); err != nil {
			return err //nolint:wrapcheck
		}

		return s.bookingRepo.UpdateStatus(ctx, bookingID, bookingModel.StatusCancelled, userID, now) //nolint:wrapcheck
	})
	if err != nil {
		if failure.GetCode(err) < http.StatusInternalServerError {
			return res, err
		}

		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.metrics.Cancelled(cancellation.PenaltyRate.String())
	log.Info().
		Str("booking_id", bookingID).
		Str("refund", cancellation.RefundAmount.String()).
		Str("penalty", cancellation.PenaltyAmount.String()).
		Msg("booking cancelled")

	s.requestRefund(ctx, cancellation, userID)

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(constant.CachePrefixBooking, bookingID)); err != nil {
		log.Warn().Err(err).Msg("failed to delete booking from cache")
	}

	shared.InvalidateAvailability(ctx, s.cache, booking.RoomID)

	res.FromModel(cancellation)

	return res, nil
}

// requestRefund only logs a failed publish. The cancellation stays in
// pending_processing and can be picked up again from there.
func (s *serviceImpl) requestRefund(ctx context.Context, cancellation model.Cancellation, userID string) {
	event := dto.NewRefundRequestedEvent(cancellation, userID)

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.RefundRequested, kafka.Message{
		Key:   cancellation.BookingID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("cancellation_id", cancellation.ID).Msg("failed to publish refund request")
	}
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id, status, note string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".cancellation.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	next, err := model.ParseStatus(status)
	if err != nil {
		return err //nolint:wrapcheck
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err //nolint:wrapcheck
		}

		switch {
		case current.ID == constant.Empty:
			log.Debug().Str("cancellation_id", id).Msg("status update for unknown cancellation ignored")

			return nil
		case current.Status == next && current.Note == note:
			return nil
		case current.Status.Final() && current.Status != next:
			log.Warn().
				Str("cancellation_id", id).
				Str("current", string(current.Status)).
				Str("reported", string(next)).
				Msg("status update after final state ignored")

			return nil
		}

		_, err = s.repo.UpdateStatus(ctx, id, next, note, s.clock.Now())

		return err //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("cancellation_id", id).Msg("failed to update cancellation status")

		return fmt.Errorf("failed to update cancellation status: %w", err)
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CancellationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".cancellation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cancellation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cancellation")

		return res, fmt.Errorf("failed to get cancellation: %w", err)
	}

	if cancellation.ID == constant.Empty {
		return res, failure.NotFound("cancellation not found") // nolint:wrapcheck
	}

	res.FromModel(cancellation)

	return res, nil
}
