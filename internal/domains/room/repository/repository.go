package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"reservation/infras/otel"
	"reservation/infras/postgres"
	"reservation/internal/domains/room/model"
	"reservation/shared"
	gRepo "reservation/shared/repository"
)

type Room interface {
	Exist(ctx context.Context, id string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Exist(ctx context.Context, id string) (bool, error) {
	exist, err := r.Repository.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to check room: %w", err)
	}

	return exist, nil
}
