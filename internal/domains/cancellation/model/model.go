package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"reservation/shared/failure"
)

const (
	TableName  = "cancellations"
	EntityName = "cancellation"

	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldStatus     = "status"
	FieldNote       = "note"
	FieldModifiedAt = "modified_at"
)

// Status tracks the refund owed by a cancellation through the payment processor.
type Status string

const (
	StatusPendingProcessing Status = "pending_processing"
	StatusProcessing        Status = "processing"
	StatusRefunded          Status = "refunded"
	StatusFailed            Status = "failed"
	StatusRejected          Status = "rejected"
)

var statusDisplayNames = map[Status]string{
	StatusPendingProcessing: "Pending Processing",
	StatusProcessing:        "Processing",
	StatusRefunded:          "Refunded",
	StatusFailed:            "Failed",
	StatusRejected:          "Rejected",
}

var statusLookup = func() map[string]Status {
	lookup := make(map[string]Status, len(statusDisplayNames)*2) //nolint:mnd
	for status, display := range statusDisplayNames {
		lookup[string(status)] = status
		lookup[strings.ToLower(display)] = status
	}

	return lookup
}()

// ParseStatus accepts a status code or its display name, case-insensitively.
func ParseStatus(s string) (Status, error) {
	status, ok := statusLookup[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", failure.InvalidStatus // nolint:wrapcheck
	}

	return status, nil
}

func (s Status) DisplayName() string {
	return statusDisplayNames[s]
}

// Final reports states no later callback may leave.
func (s Status) Final() bool {
	return s == StatusRefunded || s == StatusRejected
}

type Cancellation struct {
	ID                string          `db:"id"`
	BookingID         string          `db:"booking_id"`
	RequestedBy       string          `db:"requested_by"`
	Reason            string          `db:"reason"`
	TotalCharged      decimal.Decimal `db:"total_charged"`
	AmountPaid        decimal.Decimal `db:"amount_paid"`
	RefundAmount      decimal.Decimal `db:"refund_amount"`
	PenaltyAmount     decimal.Decimal `db:"penalty_amount"`
	PenaltyRate       decimal.Decimal `db:"penalty_rate"`
	HoursUntilCheckIn int64           `db:"hours_until_check_in"`
	Status            Status          `db:"status"`
	Note              string          `db:"note"`
	CreatedAt         time.Time       `db:"created_at"`
	ModifiedAt        time.Time       `db:"modified_at"`
}
