// Package guard serializes reservation writes per room and answers overlap
// questions against the state visible to the locking transaction.
package guard

//go:generate go run go.uber.org/mock/mockgen -source=./guard.go -destination=./mocks/guard_mock.go -package=mocks

import (
	"context"
	"fmt"

	"reservation/config"
	"reservation/infras/otel"
	bookingModel "reservation/internal/domains/booking/model"
	bookingRepo "reservation/internal/domains/booking/repository"
	holdModel "reservation/internal/domains/hold/model"
	holdRepo "reservation/internal/domains/hold/repository"
	"reservation/shared/clock"
	"reservation/shared/constant"
	"reservation/shared/interval"
)

type OverlapQuery struct {
	RoomID           string
	Period           interval.Interval
	BlockingStatuses []bookingModel.Status
	// IncludeSoftHold also counts awaiting-deposit bookings younger than the soft hold window.
	IncludeSoftHold bool
}

// Guard must be used inside postgres.Transactor.WithinTx. Acquire first, then
// the overlap checks see every row committed by the previous lock holder.
type Guard interface {
	Acquire(ctx context.Context, roomID string) error
	HasOverlap(ctx context.Context, query OverlapQuery) (bool, error)
	HasForeignHold(ctx context.Context, roomID, userID string, period interval.Interval) (bool, error)
}

type guardImpl struct {
	locker   Locker
	bookings bookingRepo.Booking
	holds    holdRepo.Hold
	clock    clock.Clock
	cfg      *config.Config
	otel     otel.Otel
}

func New(locker Locker, bookings bookingRepo.Booking, holds holdRepo.Hold, clk clock.Clock, cfg *config.Config, otel otel.Otel) Guard {
	return &guardImpl{
		locker:   locker,
		bookings: bookings,
		holds:    holds,
		clock:    clk,
		cfg:      cfg,
		otel:     otel,
	}
}

func (g *guardImpl) Acquire(ctx context.Context, roomID string) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGuardScopeName, constant.OtelGuardScopeName+".Acquire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("room_id", roomID)

	return g.locker.Lock(ctx, roomID) //nolint:wrapcheck
}

func (g *guardImpl) HasOverlap(ctx context.Context, q OverlapQuery) (_ bool, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGuardScopeName, constant.OtelGuardScopeName+".HasOverlap")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := bookingModel.OverlapFilter{
		RoomID:   q.RoomID,
		Period:   q.Period,
		Statuses: q.BlockingStatuses,
	}

	if q.IncludeSoftHold {
		since := g.clock.Now().Add(-g.cfg.Reservation.SoftHoldWindow())
		filter.AwaitingSince = &since
	}

	count, err := g.bookings.CountOverlapping(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	return count > 0, nil
}

func (g *guardImpl) HasForeignHold(ctx context.Context, roomID, userID string, period interval.Interval) (_ bool, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGuardScopeName, constant.OtelGuardScopeName+".HasForeignHold")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now, err := g.holds.Now(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read hold clock: %w", err)
	}

	holds, err := g.holds.FindActiveOverlap(ctx, holdModel.OverlapFilter{RoomID: roomID, Period: period, Now: now})
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping holds: %w", err)
	}

	for _, hold := range holds {
		if hold.UserID != userID {
			return true, nil
		}
	}

	return false, nil
}
