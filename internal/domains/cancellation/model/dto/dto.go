package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"reservation/internal/domains/cancellation/model"
	"reservation/internal/domains/cancellation/refund"
	"reservation/shared/constant"
	"reservation/shared/timezone"
)

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// NewCancellation records a quote as a cancellation awaiting the refund.
func NewCancellation(bookingID, requestedBy, reason string, quote refund.Quote, now time.Time) model.Cancellation {
	return model.Cancellation{
		ID:                uuid.NewString(),
		BookingID:         bookingID,
		RequestedBy:       requestedBy,
		Reason:            reason,
		TotalCharged:      quote.TotalCharged,
		AmountPaid:        quote.AmountPaid,
		RefundAmount:      quote.RefundAmount,
		PenaltyAmount:     quote.PenaltyAmount,
		PenaltyRate:       quote.PenaltyRate,
		HoursUntilCheckIn: quote.HoursUntilCheckIn,
		Status:            model.StatusPendingProcessing,
		CreatedAt:         now,
		ModifiedAt:        now,
	}
}

type UpdateCancellationStatusRequest struct {
	Status string `json:"status" validate:"required,max=64"`
	Note   string `json:"note"   validate:"max=1000"`
}

type CancellationResponse struct {
	ID                string          `json:"id"`
	BookingID         string          `json:"booking_id"`
	RequestedBy       string          `json:"requested_by"`
	Reason            string          `json:"reason"`
	TotalCharged      decimal.Decimal `json:"total_charged"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	RefundAmount      decimal.Decimal `json:"refund_amount"`
	PenaltyAmount     decimal.Decimal `json:"penalty_amount"`
	PenaltyRate       decimal.Decimal `json:"penalty_rate"`
	HoursUntilCheckIn int64           `json:"hours_until_check_in"`
	Status            model.Status    `json:"status"`
	StatusName        string          `json:"status_name"`
	Note              string          `json:"note"`
	CreatedAt         string          `json:"created_at"`
	ModifiedAt        string          `json:"modified_at"`
}

func (r *CancellationResponse) FromModel(c model.Cancellation) {
	r.ID = c.ID
	r.BookingID = c.BookingID
	r.RequestedBy = c.RequestedBy
	r.Reason = c.Reason
	r.TotalCharged = c.TotalCharged
	r.AmountPaid = c.AmountPaid
	r.RefundAmount = c.RefundAmount
	r.PenaltyAmount = c.PenaltyAmount
	r.PenaltyRate = c.PenaltyRate
	r.HoursUntilCheckIn = c.HoursUntilCheckIn
	r.Status = c.Status
	r.StatusName = c.Status.DisplayName()
	r.Note = c.Note
	r.CreatedAt = timezone.Format(c.CreatedAt, constant.DateFormat)
	r.ModifiedAt = timezone.Format(c.ModifiedAt, constant.DateFormat)
}

// RefundRequestedEvent asks the payment processor to pay RefundAmount back.
type RefundRequestedEvent struct {
	CancellationID string          `json:"cancellation_id"`
	BookingID      string          `json:"booking_id"`
	UserID         string          `json:"user_id"`
	RefundAmount   decimal.Decimal `json:"refund_amount"`
	PenaltyAmount  decimal.Decimal `json:"penalty_amount"`
	RequestedAt    time.Time       `json:"requested_at"`
}

func NewRefundRequestedEvent(c model.Cancellation, userID string) RefundRequestedEvent {
	return RefundRequestedEvent{
		CancellationID: c.ID,
		BookingID:      c.BookingID,
		UserID:         userID,
		RefundAmount:   c.RefundAmount,
		PenaltyAmount:  c.PenaltyAmount,
		RequestedAt:    c.CreatedAt,
	}
}

// RefundStatusEvent is the payment processor's report on a refund.
type RefundStatusEvent struct {
	CancellationID string `json:"cancellation_id" validate:"required"`
	Status         string `json:"status"          validate:"required"`
	Note           string `json:"note"`
}
