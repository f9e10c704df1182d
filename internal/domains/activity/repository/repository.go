package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"frontdesk/infras/otel"
	"frontdesk/infras/store"
	"frontdesk/internal/domains/activity/model"
	gDto "frontdesk/shared/dto"
	gRepo "frontdesk/shared/repository"
)

type Activity interface {
	Insert(ctx context.Context, model model.Log) (int64, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Log, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Log]
}

func New(db *store.Store, otel otel.Otel) Activity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Log](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
