package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"reservation/infras/otel"
	"reservation/infras/postgres"
	"reservation/internal/domains/hold/model"
	"reservation/shared"
	"reservation/shared/constant"
	gDto "reservation/shared/dto"
	gRepo "reservation/shared/repository"
)

type Hold interface {
	// Now reads the database wall clock, the reference for every expiry
	// decision. It is statement time, not transaction start, so a caller that
	// waited for a lock sees the time after the wait.
	Now(ctx context.Context) (time.Time, error)
	Insert(ctx context.Context, hold model.Hold) error
	// GetByToken returns the zero Hold for an unknown token.
	GetByToken(ctx context.Context, token string) (model.Hold, error)
	// FindActiveOverlap returns matching holds, oldest first.
	FindActiveOverlap(ctx context.Context, filter model.OverlapFilter) ([]model.Hold, error)
	// Reshape rewrites interval and expiry of an existing hold, keeping its token.
	Reshape(ctx context.Context, token string, hold model.Hold) error
	// Extend moves expires_at of a hold still active at now. It reports false
	// when the token is unknown or already expired.
	Extend(ctx context.Context, token string, now, expiresAt time.Time) (bool, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Hold]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Hold {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hold](model.EntityName, model.TableName, model.FieldToken, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Now(ctx context.Context) (time.Time, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hold.Now")
	defer scope.End()

	var now time.Time

	if err := r.db.Reader(ctx).GetContext(ctx, &now, "SELECT clock_timestamp()"); err != nil {
		scope.TraceError(err)

		return time.Time{}, fmt.Errorf("failed to read database clock: %w", err)
	}

	return now, nil
}

func (r *repositoryImpl) GetByToken(ctx context.Context, token string) (model.Hold, error) {
	return r.Get(ctx, shared.FilterByID(token, model.FieldToken, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) FindActiveOverlap(ctx context.Context, f model.OverlapFilter) ([]model.Hold, error) {
	holds, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: f.RoomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "now", Field: model.FieldExpiresAt, Value: f.Now, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
			gDto.Filter{ArgName: "period_end", Field: model.FieldCheckIn, Value: f.Period.End, Operator: gDto.FilterOperatorLess, Table: model.TableName},
			gDto.Filter{ArgName: "period_start", Field: model.FieldCheckOut, Value: f.Period.Start, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping holds: %w", err)
	}

	return holds, nil
}

func (r *repositoryImpl) Reshape(ctx context.Context, token string, hold model.Hold) error {
	_, err := r.Update(ctx, map[string]any{
		model.FieldCheckIn:    hold.CheckIn,
		model.FieldCheckOut:   hold.CheckOut,
		model.FieldExpiresAt:  hold.ExpiresAt,
		model.FieldModifiedAt: hold.ModifiedAt,
	}, shared.FilterByID(token, model.FieldToken, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to reshape hold: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Extend(ctx context.Context, token string, now, expiresAt time.Time) (bool, error) {
	affected, err := r.Update(ctx, map[string]any{
		model.FieldExpiresAt:  expiresAt,
		model.FieldModifiedAt: now,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldToken, Value: token, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "now", Field: model.FieldExpiresAt, Value: now, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to extend hold: %w", err)
	}

	return affected > 0, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, token string) error {
	if _, err := r.Repository.Delete(ctx, shared.FilterByID(token, model.FieldToken, model.TableName)); err != nil {
		return fmt.Errorf("failed to delete hold: %w", err)
	}

	return nil
}

func (r *repositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := r.Repository.Delete(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{ArgName: "now", Field: model.FieldExpiresAt, Value: now, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired holds: %w", err)
	}

	return deleted, nil
}
