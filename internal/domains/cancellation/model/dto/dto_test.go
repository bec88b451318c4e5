package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"reservation/internal/domains/cancellation/model"
	"reservation/internal/domains/cancellation/model/dto"
	"reservation/internal/domains/cancellation/refund"
)

func TestNewCancellation(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	quote := refund.Calculate(now.Add(18*time.Hour), now, decimal.NewFromInt(500), decimal.NewFromInt(1000))

	c := dto.NewCancellation("booking-1", "user-1", "plans changed", quote, now)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "booking-1", c.BookingID)
	assert.Equal(t, "user-1", c.RequestedBy)
	assert.Equal(t, model.StatusPendingProcessing, c.Status)
	assert.True(t, decimal.NewFromInt(300).Equal(c.PenaltyAmount))
	assert.True(t, decimal.NewFromInt(200).Equal(c.RefundAmount))
	assert.Equal(t, int64(18), c.HoursUntilCheckIn)
	assert.Equal(t, now, c.CreatedAt)

	event := dto.NewRefundRequestedEvent(c, "user-1")
	assert.Equal(t, c.ID, event.CancellationID)
	assert.True(t, c.RefundAmount.Equal(event.RefundAmount))

	var res dto.CancellationResponse
	res.FromModel(c)
	assert.Equal(t, "Pending Processing", res.StatusName)
	assert.Equal(t, c.ID, res.ID)
}
