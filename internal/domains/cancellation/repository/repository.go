package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"reservation/infras/otel"
	"reservation/infras/postgres"
	"reservation/internal/domains/cancellation/model"
	"reservation/shared"
	gRepo "reservation/shared/repository"
)

type Cancellation interface {
	Insert(ctx context.Context, cancellation model.Cancellation) error
	GetByID(ctx context.Context, id string) (model.Cancellation, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (model.Cancellation, error)
	// UpdateStatus reports false when no cancellation has the id.
	UpdateStatus(ctx context.Context, id string, status model.Status, note string, at time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Cancellation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Cancellation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Cancellation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Cancellation, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetForUpdate(ctx context.Context, id string) (model.Cancellation, error) {
	return r.Repository.GetForUpdate(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id string, status model.Status, note string, at time.Time) (bool, error) {
	affected, err := r.Update(ctx, map[string]any{
		model.FieldStatus:     status,
		model.FieldNote:       note,
		model.FieldModifiedAt: at,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to update cancellation status: %w", err)
	}

	return affected > 0, nil
}
