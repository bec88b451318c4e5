package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"reservation/infras/otel"
	"reservation/infras/postgres"
	"reservation/internal/domains/payment/model"
	"reservation/shared/constant"
)

type Payment interface {
	// GetTotalPaid sums the successful payments of a booking; zero when there are none.
	GetTotalPaid(ctx context.Context, bookingID string) (decimal.Decimal, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

var totalPaidQuery = fmt.Sprintf(
	"SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s = $1 AND %s = $2",
	model.FieldAmount, model.TableName, model.FieldBookingID, model.FieldStatus,
)

func (r *repositoryImpl) GetTotalPaid(ctx context.Context, bookingID string) (decimal.Decimal, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.GetTotalPaid")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, totalPaidQuery)

	var total decimal.Decimal

	if err := r.db.Reader(ctx).GetContext(ctx, &total, totalPaidQuery, bookingID, model.StatusSucceeded); err != nil {
		scope.TraceError(err)

		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}

	return total, nil
}
