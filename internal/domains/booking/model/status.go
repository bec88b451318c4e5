package model

import (
	"strings"

	"reservation/shared/failure"
)

// Status is the booking lifecycle state. The zero value is not a valid status.
type Status string

const (
	StatusAwaitingDepositPayment Status = "awaiting_deposit_payment"
	StatusDeposited              Status = "deposited"
	StatusAwaitingCheckIn        Status = "awaiting_check_in"
	StatusFullyPaid              Status = "fully_paid"
	StatusCheckedIn              Status = "checked_in"
	StatusCheckedOut             Status = "checked_out"
	StatusCancelled              Status = "cancelled"
)

var statusDisplayNames = map[Status]string{
	StatusAwaitingDepositPayment: "Awaiting Deposit Payment",
	StatusDeposited:              "Deposited",
	StatusAwaitingCheckIn:        "Awaiting Check-in",
	StatusFullyPaid:              "Fully Paid",
	StatusCheckedIn:              "Checked In",
	StatusCheckedOut:             "Checked Out",
	StatusCancelled:              "Cancelled",
}

// statusLookup maps lowercase codes and display names to their status.
var statusLookup = func() map[string]Status {
	lookup := make(map[string]Status, len(statusDisplayNames)*2) //nolint:mnd
	for status, display := range statusDisplayNames {
		lookup[string(status)] = status
		lookup[strings.ToLower(display)] = status
	}

	return lookup
}()

// ParseStatus accepts a status code or its display name, case-insensitively.
// Anything else is failure.InvalidStatus.
func ParseStatus(s string) (Status, error) {
	status, ok := statusLookup[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", failure.InvalidStatus // nolint:wrapcheck
	}

	return status, nil
}

func (s Status) Valid() bool {
	_, ok := statusDisplayNames[s]

	return ok
}

func (s Status) DisplayName() string {
	return statusDisplayNames[s]
}

func (s Status) String() string {
	return string(s)
}

// BlockingStatuses are the states that always reserve the room.
func BlockingStatuses() []Status {
	return []Status{StatusDeposited, StatusAwaitingCheckIn, StatusFullyPaid, StatusCheckedIn}
}
