package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"reservation/config"
	"reservation/infras/kafka"
	kafkaMocks "reservation/infras/kafka/mocks"
	"reservation/infras/metrics"
	otelMocks "reservation/infras/otel/mocks"
	pgMocks "reservation/infras/postgres/mocks"
	bookingMocks "reservation/internal/domains/booking/mocks"
	bookingModel "reservation/internal/domains/booking/model"
	cancellationMocks "reservation/internal/domains/cancellation/mocks"
	"reservation/internal/domains/cancellation/model"
	"reservation/internal/domains/cancellation/model/dto"
	"reservation/internal/domains/cancellation/service"
	paymentMocks "reservation/internal/domains/payment/mocks"
	"reservation/shared/cache"
	"reservation/shared/clock"
	"reservation/shared/failure"
)

const refundTopic = "payment.refund.requested"

type fixture struct {
	repo     *cancellationMocks.MockCancellation
	bookings *bookingMocks.MockBooking
	payments *paymentMocks.MockPayment
	kafka    *kafkaMocks.MockClient
	clock    *clock.Manual
	redis    *miniredis.Miniredis
	svc      service.Cancellation
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tx := pgMocks.NewMockTransactor(ctrl)
	tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }).
		AnyTimes()

	f := fixture{
		repo:     cancellationMocks.NewMockCancellation(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		payments: paymentMocks.NewMockPayment(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		clock:    clock.NewManual(time.Date(2026, 6, 19, 20, 0, 0, 0, time.UTC)),
		redis:    mr,
	}

	cfg := &config.Config{}
	cfg.Kafka.Topics.RefundRequested = refundTopic

	f.svc = service.New(f.repo, f.bookings, f.payments, tx, f.kafka, f.clock, cfg,
		cache.NewRedisCache(client, otelMocks.NewOtel()), metrics.New(), otelMocks.NewOtel())

	return f
}

// check-in is 18 hours after the fixture clock, the 30% tier
var booking = bookingModel.Booking{
	ID:               "b1",
	RoomID:           "r1",
	UserID:           "u1",
	CheckIn:          time.Date(2026, 6, 20, 14, 0, 0, 0, time.UTC),
	CheckOut:         time.Date(2026, 6, 22, 12, 0, 0, 0, time.UTC),
	Status:           bookingModel.StatusFullyPaid,
	ProvisionalTotal: decimal.NewFromInt(1_000_000),
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	f.redis.Set("booking:b1", "{}")
	f.redis.Set("availability:r1:1:2", "false")

	f.bookings.EXPECT().GetByID(gomock.Any(), "b1").Return(booking, nil)
	f.payments.EXPECT().GetTotalPaid(gomock.Any(), "b1").Return(decimal.NewFromInt(1_000_000), nil)
	f.bookings.EXPECT().GetForUpdate(gomock.Any(), "b1").Return(booking, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c model.Cancellation) error {
		assert.Equal(t, model.StatusPendingProcessing, c.Status)
		assert.Equal(t, "plans changed", c.Reason)

		return nil
	})
	f.bookings.EXPECT().UpdateStatus(gomock.Any(), "b1", bookingModel.StatusCancelled, "u1", f.clock.Now()).Return(nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), refundTopic, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			require.Len(t, messages, 1)
			assert.Equal(t, "b1", messages[0].Key)

			event, ok := messages[0].Value.(dto.RefundRequestedEvent)
			require.True(t, ok)
			assert.True(t, decimal.NewFromInt(700_000).Equal(event.RefundAmount))

			return nil
		})

	res, err := f.svc.Cancel(context.Background(), "b1", "plans changed", "u1")

	require.NoError(t, err)
	assert.Equal(t, int64(18), res.HoursUntilCheckIn)
	assert.True(t, decimal.NewFromInt(300_000).Equal(res.PenaltyAmount))
	assert.True(t, decimal.NewFromInt(700_000).Equal(res.RefundAmount))
	assert.False(t, f.redis.Exists("booking:b1"))
	assert.False(t, f.redis.Exists("availability:r1:1:2"))
}

func TestCancel_PublishFailureIsNotReturned(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().GetByID(gomock.Any(), "b1").Return(booking, nil)
	f.payments.EXPECT().GetTotalPaid(gomock.Any(), "b1").Return(decimal.Zero, nil)
	f.bookings.EXPECT().GetForUpdate(gomock.Any(), "b1").Return(booking, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.bookings.EXPECT().UpdateStatus(gomock.Any(), "b1", bookingModel.StatusCancelled, "u1", gomock.Any()).Return(nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), refundTopic, gomock.Any()).Return(errors.New("broker down"))

	res, err := f.svc.Cancel(context.Background(), "b1", "", "u1")

	require.NoError(t, err)
	assert.True(t, res.RefundAmount.IsZero())
}

func TestCancel_Refusals(t *testing.T) {
	cancelled := booking
	cancelled.Status = bookingModel.StatusCancelled

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().GetByID(gomock.Any(), "b1").Return(bookingModel.Booking{}, nil)

		_, err := f.svc.Cancel(context.Background(), "b1", "", "u1")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().GetByID(gomock.Any(), "b1").Return(cancelled, nil)

		_, err := f.svc.Cancel(context.Background(), "b1", "", "u1")
		assert.ErrorIs(t, err, failure.AlreadyCancelled)
	})

	t.Run("cancelled concurrently", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().GetByID(gomock.Any(), "b1").Return(booking, nil)
		f.payments.EXPECT().GetTotalPaid(gomock.Any(), "b1").Return(decimal.Zero, nil)
		f.bookings.EXPECT().GetForUpdate(gomock.Any(), "b1").Return(cancelled, nil)

		_, err := f.svc.Cancel(context.Background(), "b1", "", "u1")
		assert.ErrorIs(t, err, failure.AlreadyCancelled)
	})

	t.Run("payment error is returned unchanged", func(t *testing.T) {
		f := newFixture(t)
		paymentErr := errors.New("payment ledger unavailable")

		f.bookings.EXPECT().GetByID(gomock.Any(), "b1").Return(booking, nil)
		f.payments.EXPECT().GetTotalPaid(gomock.Any(), "b1").Return(decimal.Zero, paymentErr)

		_, err := f.svc.Cancel(context.Background(), "b1", "", "u1")
		assert.Equal(t, paymentErr, err)
	})
}

func TestUpdateStatus(t *testing.T) {
	pending := model.Cancellation{ID: "c1", Status: model.StatusPendingProcessing}
	refunded := model.Cancellation{ID: "c1", Status: model.StatusRefunded, Note: "done"}

	t.Run("applies a transition", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdate(gomock.Any(), "c1").Return(pending, nil)
		f.repo.EXPECT().UpdateStatus(gomock.Any(), "c1", model.StatusRefunded, "done", f.clock.Now()).Return(true, nil)

		require.NoError(t, f.svc.UpdateStatus(context.Background(), "c1", "Refunded", "done"))
	})

	t.Run("repeat delivery is a no-op", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdate(gomock.Any(), "c1").Return(refunded, nil)

		require.NoError(t, f.svc.UpdateStatus(context.Background(), "c1", "refunded", "done"))
	})

	t.Run("final state is kept", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdate(gomock.Any(), "c1").Return(refunded, nil)

		require.NoError(t, f.svc.UpdateStatus(context.Background(), "c1", "processing", ""))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdate(gomock.Any(), "nope").Return(model.Cancellation{}, nil)

		require.NoError(t, f.svc.UpdateStatus(context.Background(), "nope", "failed", ""))
	})

	t.Run("unmapped status is rejected", func(t *testing.T) {
		f := newFixture(t)

		assert.ErrorIs(t, f.svc.UpdateStatus(context.Background(), "c1", "paid back", ""), failure.InvalidStatus)
	})
}

func TestGet(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetByID(gomock.Any(), "c1").Return(model.Cancellation{ID: "c1", Status: model.StatusFailed}, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), "c2").Return(model.Cancellation{}, nil)

	res, err := f.svc.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Failed", res.StatusName)

	_, err = f.svc.Get(context.Background(), "c2")
	assert.Equal(t, 404, failure.GetCode(err))
}
