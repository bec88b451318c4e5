package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservation/internal/domains/booking/model"
	"reservation/shared/failure"
	"reservation/shared/interval"
	gModel "reservation/shared/model"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  model.Status
	}{
		{input: "awaiting_deposit_payment", want: model.StatusAwaitingDepositPayment},
		{input: "Awaiting Deposit Payment", want: model.StatusAwaitingDepositPayment},
		{input: "  FULLY PAID ", want: model.StatusFullyPaid},
		{input: "checked_in", want: model.StatusCheckedIn},
		{input: "Awaiting Check-in", want: model.StatusAwaitingCheckIn},
		{input: "cancelled", want: model.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := model.ParseStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus_Unmapped(t *testing.T) {
	for _, input := range []string{"", "paid", "awaiting", "canceled", "checkedin"} {
		t.Run(input, func(t *testing.T) {
			_, err := model.ParseStatus(input)
			assert.ErrorIs(t, err, failure.InvalidStatus)
		})
	}
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, model.StatusDeposited.Valid())
	assert.False(t, model.Status("").Valid())
	assert.Equal(t, "Fully Paid", model.StatusFullyPaid.DisplayName())
	assert.ElementsMatch(t,
		[]model.Status{model.StatusDeposited, model.StatusAwaitingCheckIn, model.StatusFullyPaid, model.StatusCheckedIn},
		model.BlockingStatuses())
}

func TestOverlapFilter_Matches(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC) }
	now := day(1).Add(12 * time.Hour)
	since := now.Add(-15 * time.Minute)

	period, err := interval.New(day(10), day(12))
	require.NoError(t, err)

	filter := model.OverlapFilter{
		RoomID:        "r1",
		Period:        period,
		Statuses:      model.BlockingStatuses(),
		AwaitingSince: &since,
	}

	booking := func(status model.Status, in, out time.Time, createdAt time.Time) model.Booking {
		return model.Booking{
			RoomID:   "r1",
			CheckIn:  in,
			CheckOut: out,
			Status:   status,
			Metadata: gModel.Metadata{CreatedAt: createdAt},
		}
	}

	tests := []struct {
		name    string
		booking model.Booking
		want    bool
	}{
		{name: "deposited overlapping", booking: booking(model.StatusDeposited, day(11), day(13), day(1)), want: true},
		{name: "deposited adjacent", booking: booking(model.StatusDeposited, day(12), day(13), day(1)), want: false},
		{name: "cancelled overlapping", booking: booking(model.StatusCancelled, day(10), day(12), day(1)), want: false},
		{name: "checked out overlapping", booking: booking(model.StatusCheckedOut, day(10), day(12), day(1)), want: false},
		{name: "fresh awaiting deposit", booking: booking(model.StatusAwaitingDepositPayment, day(10), day(12), now.Add(-14*time.Minute)), want: true},
		{name: "awaiting deposit at window edge", booking: booking(model.StatusAwaitingDepositPayment, day(10), day(12), since), want: false},
		{name: "stale awaiting deposit", booking: booking(model.StatusAwaitingDepositPayment, day(10), day(12), now.Add(-16*time.Minute)), want: false},
		{name: "other room", booking: func() model.Booking {
			b := booking(model.StatusDeposited, day(10), day(12), day(1))
			b.RoomID = "r2"
			return b
		}(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Matches(tt.booking))
		})
	}

	filter.AwaitingSince = nil
	assert.False(t, filter.Matches(booking(model.StatusAwaitingDepositPayment, day(10), day(12), now)))
}
