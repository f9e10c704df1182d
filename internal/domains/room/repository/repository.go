package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"frontdesk/infras/otel"
	"frontdesk/infras/store"
	"frontdesk/internal/domains/room/model"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	gRepo "frontdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Booking statuses that hold a room.
const (
	activeBooked    = "Booked"
	activeCheckedIn = "Checked In"
)

const occupancyQuery = `
	SELECT rooms.id, rooms.room_number, rooms.status,
		bookings.id AS booking_id, bookings.guest_name, bookings.check_in, bookings.check_out,
		bookings.status AS booking_status
	FROM rooms
	LEFT JOIN bookings ON rooms.id = bookings.room_id
		AND bookings.status IN (:booked, :checked_in)
		AND bookings.check_in <= :today AND bookings.check_out >= :today
	ORDER BY rooms.room_number, bookings.id`

const countByStatusQuery = `
	SELECT status, COUNT(id) AS total
	FROM rooms
	GROUP BY status
	ORDER BY status`

type Room interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Occupancy(ctx context.Context, today gModel.Date) ([]model.Occupancy, error)
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(db *store.Store, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Occupancy lists every room by number with the active booking covering today.
func (r *repositoryImpl) Occupancy(ctx context.Context, today gModel.Date) ([]model.Occupancy, error) {
	res := []model.Occupancy{}

	err := r.SelectRaw(ctx, &res, occupancyQuery, map[string]any{
		"booked":     activeBooked,
		"checked_in": activeCheckedIn,
		"today":      today,
	})

	return res, err //nolint:wrapcheck
}

func (r *repositoryImpl) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	res := []model.StatusCount{}

	err := r.SelectRaw(ctx, &res, countByStatusQuery, map[string]any{})

	return res, err //nolint:wrapcheck
}
