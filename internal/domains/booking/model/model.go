package model

import (
	"time"

	"github.com/shopspring/decimal"

	"reservation/shared/interval"
	"reservation/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldRoomID           = "room_id"
	FieldUserID           = "user_id"
	FieldCheckIn          = "check_in"
	FieldCheckOut         = "check_out"
	FieldStatus           = "status"
	FieldProvisionalTotal = "provisional_total"
	FieldCreatedAt        = "created_at"
)

type Booking struct {
	ID               string          `db:"id"`
	RoomID           string          `db:"room_id"`
	UserID           string          `db:"user_id"`
	CheckIn          time.Time       `db:"check_in"`
	CheckOut         time.Time       `db:"check_out"`
	Status           Status          `db:"status"`
	ProvisionalTotal decimal.Decimal `db:"provisional_total"`
	model.Metadata
}

func (b Booking) Period() interval.Interval {
	return interval.Interval{Start: b.CheckIn, End: b.CheckOut}
}

// OverlapFilter selects bookings of one room intersecting Period. A booking
// matches when its status is in Statuses, or when AwaitingSince is set and it
// is an awaiting-deposit booking created strictly after AwaitingSince.
type OverlapFilter struct {
	RoomID        string
	Period        interval.Interval
	Statuses      []Status
	AwaitingSince *time.Time
}

// Matches applies the filter to a single booking.
func (f OverlapFilter) Matches(b Booking) bool {
	if b.RoomID != f.RoomID || !b.Period().Overlaps(f.Period) {
		return false
	}

	for _, status := range f.Statuses {
		if b.Status == status {
			return true
		}
	}

	return f.AwaitingSince != nil &&
		b.Status == StatusAwaitingDepositPayment &&
		b.CreatedAt.After(*f.AwaitingSince)
}
