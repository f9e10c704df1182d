package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"frontdesk/infras/otel"
	activityModel "frontdesk/internal/domains/activity/model"
	activityService "frontdesk/internal/domains/activity/service"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/repository"
	roomModel "frontdesk/internal/domains/room/model"
	roomRepo "frontdesk/internal/domains/room/repository"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	msgFillAllFields      = "Please fill in all fields"
	msgInvalidDate        = "Invalid date format"
	msgCheckInPast        = "Check-in date cannot be in the past"
	msgCheckOutOrder      = "Check-out date must be after check-in date"
	msgRoomNotFound       = "Selected room does not exist"
	msgBookingNotFound    = "Booking not found"
	msgCannotCheckIn      = "This booking cannot be checked in"
	msgCannotCheckOut     = "This booking cannot be checked out"
	fmtRoomConflict       = "Room %s is already booked for the selected dates"
	fmtRoomNotAvailable   = "Room %s is not available"
	fmtBookingCreated     = "Room %s booked successfully for %s!"
	fmtLogBookingCreated  = "Room %s booked for %s (%s to %s)"
	fmtCheckInSuccessful  = "Check-in successful for Room %s!"
	fmtCheckOutSuccessful = "Check-out successful for Room %s!"
	fmtLogCheckIn         = "Room %s checked in for %s"
	fmtLogCheckOut        = "Room %s checked out for %s"
)

// Transactor runs fn in one store transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.ResultResponse, error)
	Transition(ctx context.Context, id int64, transition model.Transition) (dto.ResultResponse, error)
	Active(ctx context.Context) ([]dto.BookingResponse, error)
	VerifyRoomStatus(ctx context.Context) ([]dto.StatusMismatch, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	activity activityService.Activity
	tx       Transactor
	otel     otel.Otel
	now      func() time.Time
}

func New(repo repository.Booking, roomRepo roomRepo.Room, activity activityService.Activity, tx Transactor, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		activity: activity,
		tx:       tx,
		otel:     otel,
		now:      timezone.Now,
	}
}

func actor(ctx context.Context) string {
	if user, ok := ctx.Value(constant.ContextKeyUsername).(string); ok && user != constant.Empty {
		return user
	}

	return constant.ContextUnknown
}

// Create validates the request in a fixed order and books the room. The room
// checks and both writes share one transaction so two requests for the same
// room cannot both pass.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.ResultResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Trim()

	if !req.Complete() {
		return res, failure.BadRequestFromString(msgFillAllFields)
	}

	checkIn, err := gModel.ParseDate(req.CheckIn)
	if err != nil {
		return res, failure.BadRequestFromString(msgInvalidDate)
	}

	checkOut, err := gModel.ParseDate(req.CheckOut)
	if err != nil {
		return res, failure.BadRequestFromString(msgInvalidDate)
	}

	if checkIn.Before(gModel.NewDate(s.now()).Time) {
		return res, failure.BadRequestFromString(msgCheckInPast)
	}

	if !checkOut.After(checkIn.Time) {
		return res, failure.BadRequestFromString(msgCheckOutOrder)
	}

	roomID, err := strconv.ParseInt(req.RoomID, 10, 64)
	if err != nil || roomID <= 0 {
		return res, failure.NotFound(msgRoomNotFound)
	}

	var detail model.Detail

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == 0 {
			return failure.NotFound(msgRoomNotFound)
		}

		overlaps, err := s.repo.OverlapsTx(ctx, tx, room.ID, checkIn, checkOut)
		if err != nil {
			return fmt.Errorf("failed to check booking conflicts: %w", err)
		}

		if overlaps {
			return failure.Conflict(fmt.Sprintf(fmtRoomConflict, room.RoomNumber))
		}

		// status can disagree with the booking rows, so it is checked on its own
		if room.Status != roomModel.StatusAvailable {
			return failure.Conflict(fmt.Sprintf(fmtRoomNotAvailable, room.RoomNumber))
		}

		booking := req.ToModel(room.ID, checkIn, checkOut)

		booking.ID, err = s.repo.InsertTx(ctx, tx, booking)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		err = s.roomRepo.UpdateTx(ctx, tx,
			map[string]any{roomModel.FieldStatus: roomModel.StatusBooked},
			shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		detail = model.Detail{Booking: booking, RoomNumber: room.RoomNumber}

		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("room_id", req.RoomID).Msg("booking rejected")

		return res, err
	}

	s.activity.Record(ctx, actor(ctx), activityModel.ActionBookingCreated,
		fmt.Sprintf(fmtLogBookingCreated, detail.RoomNumber, detail.GuestName, checkIn, checkOut))

	res.Booking.FromModel(detail)
	res.Message = fmt.Sprintf(fmtBookingCreated, detail.RoomNumber, detail.GuestName)

	return res, nil
}

// Transition moves a booking forward and updates its room in the same transaction.
func (s *serviceImpl) Transition(ctx context.Context, id int64, transition model.Transition) (res dto.ResultResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var detail model.Detail

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := s.repo.GetDetailForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if current.ID == 0 {
			return failure.NotFound(msgBookingNotFound)
		}

		detail = current

		if !transition.Allowed(detail.Status) {
			if transition == model.TransitionCheckIn {
				return failure.Conflict(msgCannotCheckIn)
			}

			return failure.Conflict(msgCannotCheckOut)
		}

		err = s.repo.UpdateTx(ctx, tx,
			map[string]any{model.FieldStatus: transition.Target()},
			shared.FilterByID(detail.ID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		err = s.roomRepo.UpdateTx(ctx, tx,
			map[string]any{roomModel.FieldStatus: roomStatusAfter(transition)},
			shared.FilterByID(detail.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		detail.Status = transition.Target()

		return nil
	})
	if err != nil {
		log.Warn().Err(err).Int64("booking_id", id).Msg("booking transition rejected")

		return res, err
	}

	res.Booking.FromModel(detail)

	if transition == model.TransitionCheckIn {
		s.activity.Record(ctx, actor(ctx), activityModel.ActionCheckIn, fmt.Sprintf(fmtLogCheckIn, detail.RoomNumber, detail.GuestName))
		res.Message = fmt.Sprintf(fmtCheckInSuccessful, detail.RoomNumber)
	} else {
		s.activity.Record(ctx, actor(ctx), activityModel.ActionCheckOut, fmt.Sprintf(fmtLogCheckOut, detail.RoomNumber, detail.GuestName))
		res.Message = fmt.Sprintf(fmtCheckOutSuccessful, detail.RoomNumber)
	}

	return res, nil
}

func roomStatusAfter(transition model.Transition) string {
	if transition == model.TransitionCheckIn {
		return roomModel.StatusOccupied
	}

	return roomModel.StatusAvailable
}

// Active lists bookings holding a room, earliest check-in first.
func (s *serviceImpl) Active(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Active")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldCheckIn + "," + model.TableName + "." + model.FieldID,
		SortDir: gDto.SortDirAsc,
	}

	models, err := s.repo.GetAllDetail(ctx, params, gDto.FilterGroup{Filters: []any{repository.ActiveFilter()}})
	if err != nil {
		log.Error().Err(err).Msg("failed to get active bookings")

		return nil, fmt.Errorf("failed to get active bookings: %w", err)
	}

	return dto.FromModels(models), nil
}

// VerifyRoomStatus compares every room status with its active booking. An
// Available room has none, a Booked room has a Booked one and an Occupied room
// has a Checked In one.
func (s *serviceImpl) VerifyRoomStatus(ctx context.Context) (res []dto.StatusMismatch, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyRoomStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  roomModel.TableName + "." + roomModel.FieldRoomNumber,
		SortDir: gDto.SortDirAsc,
	}, gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	active, err := s.Active(ctx)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[int64][]dto.BookingResponse, len(active))
	for _, booking := range active {
		byRoom[booking.RoomID] = append(byRoom[booking.RoomID], booking)
	}

	res = []dto.StatusMismatch{}

	for _, room := range rooms {
		bookings := byRoom[room.ID]

		if len(bookings) == 0 {
			if room.Status != roomModel.StatusAvailable {
				res = append(res, dto.StatusMismatch{RoomNumber: room.RoomNumber, RoomStatus: room.Status})
			}

			continue
		}

		for _, booking := range bookings {
			if roomStatusFor(booking.Status) != room.Status {
				res = append(res, dto.StatusMismatch{
					RoomNumber:    room.RoomNumber,
					RoomStatus:    room.Status,
					BookingID:     booking.ID,
					BookingStatus: booking.Status,
				})
			}
		}
	}

	for _, mismatch := range res {
		log.Warn().Str("room", mismatch.RoomNumber).Msg(mismatch.String())
	}

	return res, nil
}

func roomStatusFor(bookingStatus string) string {
	if bookingStatus == model.StatusCheckedIn {
		return roomModel.StatusOccupied
	}

	return roomModel.StatusBooked
}
