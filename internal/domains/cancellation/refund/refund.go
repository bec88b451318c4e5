// Package refund prices a cancellation from the time left before check-in.
//
//	hours until check-in   penalty
//	>= 24                  0%
//	12 .. 23               30%
//	< 12                   100%
//
// The penalty is charged on the booking total and rounded to a whole currency
// unit. Whatever was paid above the penalty is refunded.
package refund

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	freeCancellationHours = 24
	partialPenaltyHours   = 12
)

var (
	RateNone    = decimal.Zero
	RatePartial = decimal.RequireFromString("0.30")
	RateFull    = decimal.NewFromInt(1)
)

type Quote struct {
	TotalCharged      decimal.Decimal `json:"total_charged"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	RefundAmount      decimal.Decimal `json:"refund_amount"`
	PenaltyAmount     decimal.Decimal `json:"penalty_amount"`
	PenaltyRate       decimal.Decimal `json:"penalty_rate"`
	HoursUntilCheckIn int64           `json:"hours_until_check_in"`
}

// Rate returns the penalty share for the given whole hours before check-in.
func Rate(hoursUntilCheckIn int64) decimal.Decimal {
	switch {
	case hoursUntilCheckIn >= freeCancellationHours:
		return RateNone
	case hoursUntilCheckIn >= partialPenaltyHours:
		return RatePartial
	default:
		return RateFull
	}
}

// Calculate never fails. A check-in already in the past counts as negative
// hours and takes the full penalty.
func Calculate(checkIn, now time.Time, amountPaid, totalCharged decimal.Decimal) Quote {
	hours := int64(math.Floor(checkIn.Sub(now).Hours()))
	rate := Rate(hours)
	penalty := totalCharged.Mul(rate).Round(0)

	return Quote{
		TotalCharged:      totalCharged,
		AmountPaid:        amountPaid,
		RefundAmount:      decimal.Max(decimal.Zero, amountPaid.Sub(penalty)),
		PenaltyAmount:     penalty,
		PenaltyRate:       rate,
		HoursUntilCheckIn: hours,
	}
}
