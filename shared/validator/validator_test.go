package validator_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservation/shared/failure"
	"reservation/shared/validator"
)

type stayRequest struct {
	RoomID   string          `json:"room_id"   validate:"required"`
	CheckIn  time.Time       `json:"check_in"  validate:"required"`
	CheckOut time.Time       `json:"check_out" validate:"required,gtfield=CheckIn"`
	Total    decimal.Decimal `json:"total"     validate:"nonnegative"`
	TTL      int             `json:"ttl"       validate:"omitempty,lte=60"`
}

func validStay() stayRequest {
	in := time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC)

	return stayRequest{
		RoomID:   "room-1",
		CheckIn:  in,
		CheckOut: in.Add(48 * time.Hour),
		Total:    decimal.NewFromInt(200),
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *stayRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(*stayRequest) {}},
		{name: "missing room", mutate: func(r *stayRequest) { r.RoomID = "" }, wantMsg: "room_id is required"},
		{name: "checkout before checkin", mutate: func(r *stayRequest) { r.CheckOut = r.CheckIn.Add(-time.Hour) }, wantMsg: "check_out must be after CheckIn"},
		{name: "negative total", mutate: func(r *stayRequest) { r.Total = decimal.NewFromInt(-1) }, wantMsg: "total must not be negative"},
		{name: "ttl too large", mutate: func(r *stayRequest) { r.TTL = 61 }, wantMsg: "ttl must be less than or equal to 60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidate(t *testing.T) {
	body := `{"room_id":"room-1","check_in":"2025-07-01T14:00:00Z","check_out":"2025-07-03T12:00:00Z","total":"150.50"}`

	var req stayRequest
	require.NoError(t, validator.Validate(strings.NewReader(body), &req))
	assert.True(t, req.Total.Equal(decimal.RequireFromString("150.50")))

	var bad stayRequest
	err := validator.Validate(strings.NewReader(`{"room_id":`), &bad)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	var unknown stayRequest
	err = validator.Validate(strings.NewReader(`{"room_id":"r","surprise":true}`), &unknown)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("550e8400-e29b-41d4-a716-446655440000", "required,uuid4"))

	err := validator.ValidateVar("not-a-uuid", "required,uuid4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a valid UUID")
}
