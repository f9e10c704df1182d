package service

import (
	"frontdesk/infras/otel"
	activityService "frontdesk/internal/domains/activity/service"
	"frontdesk/internal/domains/booking/repository"
	roomRepo "frontdesk/internal/domains/room/repository"
	"time"
)

// NewWithClock builds the service with a fixed notion of today.
func NewWithClock(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	activity activityService.Activity,
	tx Transactor,
	otel otel.Otel,
	now func() time.Time,
) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		activity: activity,
		tx:       tx,
		otel:     otel,
		now:      now,
	}
}
