package model

import (
	"time"

	"reservation/shared/interval"
)

const (
	TableName  = "holds"
	EntityName = "hold"

	FieldToken      = "token"
	FieldRoomID     = "room_id"
	FieldUserID     = "user_id"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldCreatedAt  = "created_at"
	FieldExpiresAt  = "expires_at"
	FieldModifiedAt = "modified_at"
)

// Hold is a short-lived reservation of a room interval by one user. It stops
// blocking others as soon as ExpiresAt is reached, whether or not it was purged.
type Hold struct {
	Token      string    `db:"token"`
	RoomID     string    `db:"room_id"`
	UserID     string    `db:"user_id"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	CreatedAt  time.Time `db:"created_at"`
	ExpiresAt  time.Time `db:"expires_at"`
	ModifiedAt time.Time `db:"modified_at"`
}

func (h Hold) Period() interval.Interval {
	return interval.Interval{Start: h.CheckIn, End: h.CheckOut}
}

func (h Hold) ActiveAt(now time.Time) bool {
	return h.ExpiresAt.After(now)
}

// OverlapFilter selects holds of one room intersecting Period that are still
// active at Now.
type OverlapFilter struct {
	RoomID string
	Period interval.Interval
	Now    time.Time
}

func (f OverlapFilter) Matches(h Hold) bool {
	return h.RoomID == f.RoomID && h.ActiveAt(f.Now) && h.Period().Overlaps(f.Period)
}
