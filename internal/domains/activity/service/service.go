package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Activity=MockActivityService

import (
	"context"
	"fmt"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/activity/model"
	"frontdesk/internal/domains/activity/model/dto"
	"frontdesk/internal/domains/activity/repository"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Activity interface {
	// Record never fails the caller, errors are only logged.
	Record(ctx context.Context, user, action, details string)
	Recent(ctx context.Context, limit int) ([]dto.LogResponse, error)
}

type serviceImpl struct {
	repo   repository.Activity
	events kafka.Publisher
	otel   otel.Otel
}

// New accepts a nil events publisher, in which case entries are only stored.
func New(repo repository.Activity, events kafka.Publisher, otel otel.Otel) Activity {
	return &serviceImpl{
		repo:   repo,
		events: events,
		otel:   otel,
	}
}

func (s *serviceImpl) Record(ctx context.Context, user, action, details string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Record")
	defer scope.End()

	entry := model.Log{
		Action:    action,
		Details:   details,
		User:      user,
		Timestamp: timezone.Now(),
	}

	id, err := s.repo.Insert(ctx, entry)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("action", action).Str("user", user).Msg("failed to record activity")

		return
	}

	if s.events == nil {
		return
	}

	entry.ID = id

	var event dto.LogResponse
	event.FromModel(entry)

	if err := s.events.Publish(ctx, kafka.Message{Key: action, Value: event}); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to publish activity event")
	}
}

// Recent returns at most limit entries, newest first. The limit is capped at
// the size of the full log view.
func (s *serviceImpl) Recent(ctx context.Context, limit int) (res []dto.LogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Recent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		Limit:   limit,
		SortBy:  model.TableName + "." + model.FieldTimestamp + "," + model.TableName + "." + model.FieldID,
		SortDir: gDto.SortDirDesc,
	}
	params.ClampLimit(constant.LogLimitFull)

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get activity logs")

		return nil, fmt.Errorf("failed to get activity logs: %w", err)
	}

	return dto.FromModels(models), nil
}
