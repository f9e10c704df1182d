package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"fmt"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/room/model"
	"frontdesk/internal/domains/room/model/dto"
	"frontdesk/internal/domains/room/repository"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Room interface {
	Occupancy(ctx context.Context) ([]dto.OccupancyResponse, error)
	Counts(ctx context.Context) (dto.CountsResponse, error)
	List(ctx context.Context) (dto.RoomListResponse, error)
}

type serviceImpl struct {
	repo repository.Room
	otel otel.Otel
	now  func() time.Time
}

func New(repo repository.Room, otel otel.Otel) Room {
	return &serviceImpl{
		repo: repo,
		otel: otel,
		now:  timezone.Now,
	}
}

func (s *serviceImpl) Occupancy(ctx context.Context) (res []dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	models, err := s.repo.Occupancy(ctx, gModel.NewDate(s.now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room occupancy")

		return nil, fmt.Errorf("failed to get room occupancy: %w", err)
	}

	return dto.FromOccupancies(models), nil
}

func (s *serviceImpl) Counts(ctx context.Context) (res dto.CountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Counts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	models, err := s.repo.CountByStatus(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context) (res dto.RoomListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldRoomNumber,
		SortDir: gDto.SortDirAsc,
	}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models)

	return res, nil
}
