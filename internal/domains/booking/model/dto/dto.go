package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"reservation/internal/domains/booking/model"
	"reservation/shared"
	"reservation/shared/constant"
	gDto "reservation/shared/dto"
	gModel "reservation/shared/model"
	"reservation/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID           string          `json:"room_id"           validate:"required,max=64"`
	CheckIn          time.Time       `json:"check_in"          validate:"required"`
	CheckOut         time.Time       `json:"check_out"         validate:"required"`
	ProvisionalTotal decimal.Decimal `json:"provisional_total" validate:"nonnegative"`
}

// ToModel builds a new booking in the initial awaiting-deposit state.
func (c *CreateBookingRequest) ToModel(userID string, now time.Time) model.Booking {
	return model.Booking{
		ID:               uuid.NewString(),
		RoomID:           c.RoomID,
		UserID:           userID,
		CheckIn:          c.CheckIn,
		CheckOut:         c.CheckOut,
		Status:           model.StatusAwaitingDepositPayment,
		ProvisionalTotal: c.ProvisionalTotal,
		Metadata:         gModel.NewMetadata(now, userID),
	}
}

type CreateBookingResponse struct {
	ID string `json:"id"`
}

type BookingResponse struct {
	ID               string          `json:"id"`
	RoomID           string          `json:"room_id"`
	UserID           string          `json:"user_id"`
	CheckIn          string          `json:"check_in"`
	CheckOut         string          `json:"check_out"`
	Status           model.Status    `json:"status"`
	StatusName       string          `json:"status_name"`
	ProvisionalTotal decimal.Decimal `json:"provisional_total"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.UserID = model.UserID
	r.CheckIn = timezone.Format(model.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(model.CheckOut, constant.DateFormat)
	r.Status = model.Status
	r.StatusName = model.Status.DisplayName()
	r.ProvisionalTotal = model.ProvisionalTotal
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
}
