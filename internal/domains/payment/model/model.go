package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldStatus    = "status"

	// StatusSucceeded is the only payment state that counts towards the amount paid.
	StatusSucceeded = "succeeded"
)

// Payment rows are written by the payment gateway integration.
type Payment struct {
	ID        string          `db:"id"`
	BookingID string          `db:"booking_id"`
	Amount    decimal.Decimal `db:"amount"`
	Status    string          `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
}
