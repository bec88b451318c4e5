package dto

import (
	"time"

	"reservation/internal/domains/hold/model"
	"reservation/shared/constant"
	"reservation/shared/timezone"
)

type AcquireHoldRequest struct {
	RoomID   string    `json:"room_id"   validate:"required,max=64"`
	CheckIn  time.Time `json:"check_in"  validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required"`
	// TTLMinutes of zero selects the configured default.
	TTLMinutes int `json:"ttl_minutes" validate:"omitempty,lte=1440"`
}

type RenewHoldRequest struct {
	TTLMinutes int `json:"ttl_minutes" validate:"omitempty,lte=1440"`
}

type HoldResponse struct {
	Token     string `json:"token"`
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	ExpiresAt string `json:"expires_at"`
}

func (r *HoldResponse) FromModel(hold model.Hold) {
	r.Token = hold.Token
	r.RoomID = hold.RoomID
	r.CheckIn = timezone.Format(hold.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(hold.CheckOut, constant.DateFormat)
	r.ExpiresAt = timezone.Format(hold.ExpiresAt, constant.DateFormat)
}

type RenewHoldResponse struct {
	Renewed bool `json:"renewed"`
}

type ReleaseHoldResponse struct {
	Released bool `json:"released"`
}
