package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"frontdesk/infras/otel"
	"frontdesk/infras/store"
	"frontdesk/internal/domains/booking/model"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	gRepo "frontdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) (int64, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	// OverlapsTx reports whether an active booking of roomID overlaps
	// [checkIn, checkOut], both ends inclusive.
	OverlapsTx(ctx context.Context, sqltx *sqlx.Tx, roomID int64, checkIn, checkOut gModel.Date) (bool, error)
	GetDetail(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Detail, error)
	GetDetailForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Detail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Detail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	detail gRepo.Repository[model.Detail]
}

func New(db *store.Store, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.Detail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// ActiveFilter matches bookings that still hold their room.
func ActiveFilter() gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldStatus,
		Value:    model.ActiveStatuses,
		Operator: gDto.FilterOperatorIn,
		Table:    model.TableName,
	}
}

func (r *repositoryImpl) OverlapsTx(ctx context.Context, sqltx *sqlx.Tx, roomID int64, checkIn, checkOut gModel.Date) (bool, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			ActiveFilter(),
			gDto.Filter{
				ArgName:  "new_check_out",
				Field:    model.FieldCheckIn,
				Value:    checkOut,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "new_check_in",
				Field:    model.FieldCheckOut,
				Value:    checkIn,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}

	return r.ExistTx(ctx, sqltx, filter) //nolint:wrapcheck
}

// GetDetail returns the zero Detail when nothing matches.
func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Detail, error) {
	return r.detail.Get(ctx, filter, columns...) //nolint:wrapcheck
}

func (r *repositoryImpl) GetDetailForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Detail, error) {
	return r.detail.GetForUpdateTx(ctx, sqltx, filter, columns...) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Detail, error) {
	return r.detail.GetAll(ctx, params, filter, columns...) //nolint:wrapcheck
}
