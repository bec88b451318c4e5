package model

import "time"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID   = "id"
	FieldName = "name"
)

// Room is owned by the catalogue service. Reservations only need to know it
// exists; its row doubles as the lock target when advisory locks are unavailable.
type Room struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
}
