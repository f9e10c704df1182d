package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"frontdesk/infras/otel"
	activityService "frontdesk/internal/domains/activity/service"
	bookingService "frontdesk/internal/domains/booking/service"
	"frontdesk/internal/domains/dashboard/model/dto"
	roomService "frontdesk/internal/domains/room/service"
	"frontdesk/shared/constant"
)

type Dashboard interface {
	Summary(ctx context.Context) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	rooms    roomService.Room
	bookings bookingService.Booking
	activity activityService.Activity
	otel     otel.Otel
}

func New(rooms roomService.Room, bookings bookingService.Booking, activity activityService.Activity, otel otel.Otel) Dashboard {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		activity: activity,
		otel:     otel,
	}
}

// Summary reads counts, active bookings, today's occupancy and the latest log
// entries. The first failing read aborts the summary.
func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res.Counts, err = s.rooms.Counts(ctx); err != nil {
		return res, err
	}

	if res.Bookings, err = s.bookings.Active(ctx); err != nil {
		return res, err
	}

	if res.Rooms, err = s.rooms.Occupancy(ctx); err != nil {
		return res, err
	}

	if res.Logs, err = s.activity.Recent(ctx, constant.LogLimitSummary); err != nil {
		return res, err
	}

	return res, nil
}
