package guard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"reservation/config"
	otelMocks "reservation/infras/otel/mocks"
	bookingMocks "reservation/internal/domains/booking/mocks"
	bookingModel "reservation/internal/domains/booking/model"
	holdMocks "reservation/internal/domains/hold/mocks"
	holdModel "reservation/internal/domains/hold/model"
	"reservation/internal/guard"
	guardMocks "reservation/internal/guard/mocks"
	"reservation/shared/clock"
	"reservation/shared/failure"
	"reservation/shared/interval"
)

type fixture struct {
	locker   *guardMocks.MockLocker
	bookings *bookingMocks.MockBooking
	holds    *holdMocks.MockHold
	clock    *clock.Manual
	guard    guard.Guard
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		locker:   guardMocks.NewMockLocker(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		holds:    holdMocks.NewMockHold(ctrl),
		clock:    clock.NewManual(time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.guard = guard.New(f.locker, f.bookings, f.holds, f.clock, &config.Config{}, otelMocks.NewOtel())

	return f
}

var stay = interval.Interval{
	Start: time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC),
	End:   time.Date(2026, 4, 12, 12, 0, 0, 0, time.UTC),
}

func TestGuard_Acquire(t *testing.T) {
	f := newFixture(t)

	f.locker.EXPECT().Lock(gomock.Any(), "r1").Return(nil)
	require.NoError(t, f.guard.Acquire(context.Background(), "r1"))

	f.locker.EXPECT().Lock(gomock.Any(), "r1").Return(failure.LockTimeout)
	assert.ErrorIs(t, f.guard.Acquire(context.Background(), "r1"), failure.LockTimeout)
}

func TestGuard_HasOverlap(t *testing.T) {
	t.Run("soft hold window is measured back from now", func(t *testing.T) {
		f := newFixture(t)
		since := f.clock.Now().Add(-15 * time.Minute)

		f.bookings.EXPECT().CountOverlapping(gomock.Any(), bookingModel.OverlapFilter{
			RoomID:        "r1",
			Period:        stay,
			Statuses:      bookingModel.BlockingStatuses(),
			AwaitingSince: &since,
		}).Return(1, nil)

		overlap, err := f.guard.HasOverlap(context.Background(), guard.OverlapQuery{
			RoomID:           "r1",
			Period:           stay,
			BlockingStatuses: bookingModel.BlockingStatuses(),
			IncludeSoftHold:  true,
		})

		require.NoError(t, err)
		assert.True(t, overlap)
	})

	t.Run("without soft hold", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().CountOverlapping(gomock.Any(), bookingModel.OverlapFilter{
			RoomID:   "r1",
			Period:   stay,
			Statuses: bookingModel.BlockingStatuses(),
		}).Return(0, nil)

		overlap, err := f.guard.HasOverlap(context.Background(), guard.OverlapQuery{
			RoomID:           "r1",
			Period:           stay,
			BlockingStatuses: bookingModel.BlockingStatuses(),
		})

		require.NoError(t, err)
		assert.False(t, overlap)
	})

	t.Run("store error", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().CountOverlapping(gomock.Any(), gomock.Any()).Return(0, errors.New("connection reset"))

		_, err := f.guard.HasOverlap(context.Background(), guard.OverlapQuery{RoomID: "r1", Period: stay})
		assert.Error(t, err)
	})
}

func TestGuard_HasForeignHold(t *testing.T) {
	dbNow := time.Date(2026, 4, 1, 12, 0, 5, 0, time.UTC)

	tests := []struct {
		name  string
		holds []holdModel.Hold
		want  bool
	}{
		{name: "no holds", holds: nil, want: false},
		{name: "only own hold", holds: []holdModel.Hold{{Token: "t1", UserID: "u1"}}, want: false},
		{name: "another user's hold", holds: []holdModel.Hold{{Token: "t1", UserID: "u1"}, {Token: "t2", UserID: "u2"}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.holds.EXPECT().Now(gomock.Any()).Return(dbNow, nil)
			f.holds.EXPECT().
				FindActiveOverlap(gomock.Any(), holdModel.OverlapFilter{RoomID: "r1", Period: stay, Now: dbNow}).
				Return(tt.holds, nil)

			got, err := f.guard.HasForeignHold(context.Background(), "r1", "u1", stay)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
