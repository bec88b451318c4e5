package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"reservation/infras/otel"
	"reservation/infras/postgres"
	"reservation/internal/domains/booking/model"
	"reservation/shared"
	"reservation/shared/constant"
	gDto "reservation/shared/dto"
	gRepo "reservation/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, booking model.Booking) error
	GetByID(ctx context.Context, id string) (model.Booking, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (model.Booking, error)
	ListByUser(ctx context.Context, userID string, params gDto.QueryParams, status *model.Status) ([]model.Booking, int, error)
	CountOverlapping(ctx context.Context, filter model.OverlapFilter) (int, error)
	UpdateStatus(ctx context.Context, id string, status model.Status, by string, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Booking, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetForUpdate(ctx context.Context, id string) (model.Booking, error) {
	return r.Repository.GetForUpdate(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID string, params gDto.QueryParams, status *model.Status) ([]model.Booking, int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListByUser")
	defer scope.End()

	filters := []any{
		gDto.Filter{Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if status != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: *status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	filter := gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}

	bookings, err := r.GetAll(ctx, params, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	total, err := r.Count(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return bookings, total, nil
}

// CountOverlapping counts bookings intersecting the half-open period:
// check_in < period.End AND check_out > period.Start.
func (r *repositoryImpl) CountOverlapping(ctx context.Context, f model.OverlapFilter) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountOverlapping")
	defer scope.End()

	statuses := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}

	if len(f.Statuses) > 0 {
		statuses.Filters = append(statuses.Filters, gDto.Filter{
			ArgName:  "blocking_status",
			Field:    model.FieldStatus,
			Value:    f.Statuses,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	}

	if f.AwaitingSince != nil {
		statuses.Filters = append(statuses.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{ArgName: "soft_status", Field: model.FieldStatus, Value: model.StatusAwaitingDepositPayment, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{ArgName: "soft_since", Field: model.FieldCreatedAt, Value: *f.AwaitingSince, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
			},
		})
	}

	if len(statuses.Filters) == 0 {
		return 0, nil
	}

	count, err := r.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: f.RoomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "period_end", Field: model.FieldCheckIn, Value: f.Period.End, Operator: gDto.FilterOperatorLess, Table: model.TableName},
			gDto.Filter{ArgName: "period_start", Field: model.FieldCheckOut, Value: f.Period.Start, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
			statuses,
		},
	})
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id string, status model.Status, by string, at time.Time) error {
	_, err := r.Update(ctx, map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedBy: by,
		constant.FieldModifiedAt: at,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return nil
}
