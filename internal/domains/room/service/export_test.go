package service

import (
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/room/repository"
	"time"
)

// NewWithClock builds the service with a fixed notion of today.
func NewWithClock(repo repository.Room, otel otel.Otel, now func() time.Time) Room {
	return &serviceImpl{repo: repo, otel: otel, now: now}
}
