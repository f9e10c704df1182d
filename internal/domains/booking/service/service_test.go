package service_test

import (
	"context"
	"errors"
	"frontdesk/infras/otel/mocks"
	activityMocks "frontdesk/internal/domains/activity/mocks"
	activityModel "frontdesk/internal/domains/activity/model"
	bookingMocks "frontdesk/internal/domains/booking/mocks"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/service"
	roomMocks "frontdesk/internal/domains/room/mocks"
	roomModel "frontdesk/internal/domains/room/model"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	gModel "frontdesk/shared/model"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type engineMocks struct {
	repo     *bookingMocks.MockBooking
	rooms    *roomMocks.MockRoom
	activity *activityMocks.MockActivityService
	tx       *bookingMocks.MockTransactor
	svc      service.Booking
}

func clockAt(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
	}
}

func newEngineMocks(t *testing.T) engineMocks {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := engineMocks{
		repo:     bookingMocks.NewMockBooking(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		activity: activityMocks.NewMockActivityService(ctrl),
		tx:       bookingMocks.NewMockTransactor(ctrl),
	}
	m.svc = service.NewWithClock(m.repo, m.rooms, m.activity, m.tx, mocks.NewOtel(), clockAt(2024, time.June, 1))

	return m
}

// runTx makes the mocked transactor call fn the way the store does.
func (m engineMocks) runTx() {
	m.tx.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")
}

func TestBookingService_CreateValidationOrder(t *testing.T) {
	valid := dto.CreateBookingRequest{GuestName: "Alice", RoomID: "1", CheckIn: "2024-06-01", CheckOut: "2024-06-05"}

	tests := []struct {
		name     string
		mutate   func(req *dto.CreateBookingRequest)
		wantMsg  string
		wantCode int
	}{
		{
			name:     "blank guest",
			mutate:   func(req *dto.CreateBookingRequest) { req.GuestName = "   " },
			wantMsg:  "Please fill in all fields",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "blank beats bad date",
			mutate:   func(req *dto.CreateBookingRequest) { req.RoomID = ""; req.CheckIn = "junk" },
			wantMsg:  "Please fill in all fields",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad check-in",
			mutate:   func(req *dto.CreateBookingRequest) { req.CheckIn = "06/01/2024" },
			wantMsg:  "Invalid date format",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad check-out",
			mutate:   func(req *dto.CreateBookingRequest) { req.CheckOut = "2024-13-01" },
			wantMsg:  "Invalid date format",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad date beats past date",
			mutate:   func(req *dto.CreateBookingRequest) { req.CheckIn = "2020-01-01"; req.CheckOut = "x" },
			wantMsg:  "Invalid date format",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "check-in yesterday",
			mutate:   func(req *dto.CreateBookingRequest) { req.CheckIn = "2024-05-31" },
			wantMsg:  "Check-in date cannot be in the past",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "past beats order",
			mutate:   func(req *dto.CreateBookingRequest) { req.CheckIn = "2024-05-31"; req.CheckOut = "2024-05-30" },
			wantMsg:  "Check-in date cannot be in the past",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "check-out equals check-in",
			mutate:   func(req *dto.CreateBookingRequest) { req.CheckOut = "2024-06-01" },
			wantMsg:  "Check-out date must be after check-in date",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "room id not a number",
			mutate:   func(req *dto.CreateBookingRequest) { req.RoomID = "abc" },
			wantMsg:  "Selected room does not exist",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newEngineMocks(t)

			req := valid
			tt.mutate(&req)

			_, err := m.svc.Create(userContext(), req)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, failure.Message(err))
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_CreateRoomChecks(t *testing.T) {
	req := dto.CreateBookingRequest{GuestName: "Alice", RoomID: "1", CheckIn: "2024-06-01", CheckOut: "2024-06-05"}

	t.Run("room missing", func(t *testing.T) {
		m := newEngineMocks(t)
		m.runTx()
		m.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := m.svc.Create(userContext(), req)
		assert.Equal(t, "Selected room does not exist", failure.Message(err))
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("overlap beats status", func(t *testing.T) {
		m := newEngineMocks(t)
		m.runTx()
		m.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: 1, RoomNumber: "101", Status: roomModel.StatusBooked}, nil)
		m.repo.EXPECT().OverlapsTx(gomock.Any(), gomock.Any(), int64(1), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := m.svc.Create(userContext(), req)
		assert.Equal(t, "Room 101 is already booked for the selected dates", failure.Message(err))
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("status checked without overlap", func(t *testing.T) {
		m := newEngineMocks(t)
		m.runTx()
		m.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: 1, RoomNumber: "101", Status: roomModel.StatusOccupied}, nil)
		m.repo.EXPECT().OverlapsTx(gomock.Any(), gomock.Any(), int64(1), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := m.svc.Create(userContext(), req)
		assert.Equal(t, "Room 101 is not available", failure.Message(err))
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("insert failure aborts before room update", func(t *testing.T) {
		m := newEngineMocks(t)
		m.runTx()
		m.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: 1, RoomNumber: "101", Status: roomModel.StatusAvailable}, nil)
		m.repo.EXPECT().OverlapsTx(gomock.Any(), gomock.Any(), int64(1), gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))

		_, err := m.svc.Create(userContext(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("success records activity after the writes", func(t *testing.T) {
		m := newEngineMocks(t)
		m.runTx()

		gomock.InOrder(
			m.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(roomModel.Room{ID: 1, RoomNumber: "101", Status: roomModel.StatusAvailable}, nil),
			m.repo.EXPECT().OverlapsTx(gomock.Any(), gomock.Any(), int64(1), gomock.Any(), gomock.Any()).Return(false, nil),
			m.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) (int64, error) {
					assert.Equal(t, model.StatusBooked, booking.Status)
					assert.Equal(t, "Alice", booking.GuestName)
					assert.Equal(t, "2024-06-01", booking.CheckIn.String())

					return 7, nil
				}),
			m.rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"status": roomModel.StatusBooked}, gomock.Any()).Return(nil),
			m.activity.EXPECT().Record(gomock.Any(), "admin", activityModel.ActionBookingCreated, "Room 101 booked for Alice (2024-06-01 to 2024-06-05)"),
		)

		res, err := m.svc.Create(userContext(), dto.CreateBookingRequest{
			GuestName: "  Alice ", RoomID: "1", CheckIn: "2024-06-01", CheckOut: "2024-06-05",
		})
		require.NoError(t, err)
		assert.Equal(t, "Room 101 booked successfully for Alice!", res.Message)
		assert.Equal(t, int64(7), res.Booking.ID)
		assert.Equal(t, "101", res.Booking.RoomNumber)
	})
}

func TestBookingService_TransitionRules(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		transition model.Transition
		wantMsg    string
		wantRoom   string
	}{
		{name: "check in booked", status: model.StatusBooked, transition: model.TransitionCheckIn, wantRoom: roomModel.StatusOccupied},
		{name: "check in checked in", status: model.StatusCheckedIn, transition: model.TransitionCheckIn, wantMsg: "This booking cannot be checked in"},
		{name: "check in completed", status: model.StatusCompleted, transition: model.TransitionCheckIn, wantMsg: "This booking cannot be checked in"},
		{name: "check out booked", status: model.StatusBooked, transition: model.TransitionCheckOut, wantRoom: roomModel.StatusAvailable},
		{name: "check out checked in", status: model.StatusCheckedIn, transition: model.TransitionCheckOut, wantRoom: roomModel.StatusAvailable},
		{name: "check out completed", status: model.StatusCompleted, transition: model.TransitionCheckOut, wantMsg: "This booking cannot be checked out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newEngineMocks(t)
			m.runTx()

			detail := model.Detail{
				Booking:    model.Booking{ID: 3, RoomID: 1, GuestName: "Alice", Status: tt.status},
				RoomNumber: "101",
			}
			m.repo.EXPECT().GetDetailForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(detail, nil)

			if tt.wantMsg != "" {
				_, err := m.svc.Transition(userContext(), 3, tt.transition)
				assert.Equal(t, tt.wantMsg, failure.Message(err))
				assert.Equal(t, http.StatusConflict, failure.GetCode(err))

				return
			}

			m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"status": tt.transition.Target()}, gomock.Any()).Return(nil)
			m.rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"status": tt.wantRoom}, gomock.Any()).Return(nil)
			m.activity.EXPECT().Record(gomock.Any(), "admin", gomock.Any(), gomock.Any())

			res, err := m.svc.Transition(userContext(), 3, tt.transition)
			require.NoError(t, err)
			assert.Equal(t, tt.transition.Target(), res.Booking.Status)
		})
	}

	t.Run("unknown booking", func(t *testing.T) {
		m := newEngineMocks(t)
		m.runTx()
		m.repo.EXPECT().GetDetailForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Detail{}, nil)

		_, err := m.svc.Transition(userContext(), 99, model.TransitionCheckOut)
		assert.Equal(t, "Booking not found", failure.Message(err))
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_VerifyRoomStatusMocked(t *testing.T) {
	m := newEngineMocks(t)

	m.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{
		{ID: 1, RoomNumber: "101", Status: roomModel.StatusBooked},
		{ID: 2, RoomNumber: "102", Status: roomModel.StatusOccupied},
		{ID: 3, RoomNumber: "103", Status: roomModel.StatusAvailable},
		{ID: 4, RoomNumber: "201", Status: roomModel.StatusAvailable},
	}, nil)
	m.repo.EXPECT().GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Detail{
		{Booking: model.Booking{ID: 10, RoomID: 1, Status: model.StatusBooked, CheckIn: gModel.Today()}},
		{Booking: model.Booking{ID: 11, RoomID: 3, Status: model.StatusCheckedIn, CheckIn: gModel.Today()}},
	}, nil)

	res, err := m.svc.VerifyRoomStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.StatusMismatch{
		{RoomNumber: "102", RoomStatus: roomModel.StatusOccupied},
		{RoomNumber: "103", RoomStatus: roomModel.StatusAvailable, BookingID: 11, BookingStatus: model.StatusCheckedIn},
	}, res)
}
