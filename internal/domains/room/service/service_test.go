package service_test

import (
	"context"
	"errors"
	"frontdesk/infras/otel/mocks"
	"frontdesk/infras/store/storetest"
	roomMocks "frontdesk/internal/domains/room/mocks"
	"frontdesk/internal/domains/room/model"
	"frontdesk/internal/domains/room/model/dto"
	"frontdesk/internal/domains/room/repository"
	"frontdesk/internal/domains/room/service"
	gDto "frontdesk/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 3, 15, 30, 0, 0, time.UTC)
}

func TestRoomService_Counts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	t.Run("partitions by status", func(t *testing.T) {
		mockRepo.EXPECT().
			CountByStatus(gomock.Any()).
			Return([]model.StatusCount{
				{Status: model.StatusAvailable, Total: 5},
				{Status: model.StatusBooked, Total: 2},
				{Status: model.StatusOccupied, Total: 1},
			}, nil)

		res, err := svc.Counts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dto.CountsResponse{Total: 8, Available: 5, Booked: 2, Occupied: 1}, res)
	})

	t.Run("missing statuses count as zero", func(t *testing.T) {
		mockRepo.EXPECT().
			CountByStatus(gomock.Any()).
			Return([]model.StatusCount{{Status: model.StatusAvailable, Total: 8}}, nil)

		res, err := svc.Counts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dto.CountsResponse{Total: 8, Available: 8}, res)
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().
			CountByStatus(gomock.Any()).
			Return(nil, errors.New("disk I/O error"))

		_, err := svc.Counts(context.Background())
		assert.Error(t, err)
	})
}

func TestRoomService_List(t *testing.T) {
	tests := []struct {
		name         string
		rooms        []model.Room
		hasAvailable bool
	}{
		{
			name: "some available",
			rooms: []model.Room{
				{ID: 1, RoomNumber: "101", Status: model.StatusBooked},
				{ID: 2, RoomNumber: "102", Status: model.StatusAvailable},
			},
			hasAvailable: true,
		},
		{
			name: "none available",
			rooms: []model.Room{
				{ID: 1, RoomNumber: "101", Status: model.StatusBooked},
				{ID: 2, RoomNumber: "102", Status: model.StatusOccupied},
			},
			hasAvailable: false,
		},
		{
			name:         "no rooms",
			rooms:        []model.Room{},
			hasAvailable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := roomMocks.NewMockRoom(ctrl)
			svc := service.New(mockRepo, mocks.NewOtel())

			mockRepo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Room, error) {
					assert.Equal(t, "ORDER BY rooms.room_number ASC", params.Ordering())

					return tt.rooms, nil
				})

			res, err := svc.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, res.Rooms, len(tt.rooms))
			assert.Equal(t, tt.hasAvailable, res.HasAvailable)
		})
	}
}

func TestRoomService_OccupancyCoversToday(t *testing.T) {
	s := storetest.New(t)
	svc := service.NewWithClock(repository.New(s, mocks.NewOtel()), mocks.NewOtel(), fixedNow)

	insert := `INSERT INTO bookings (guest_name, room_id, check_in, check_out, status, created_at)
		VALUES (?, (SELECT id FROM rooms WHERE room_number = ?), ?, ?, ?, CURRENT_TIMESTAMP)`

	for _, row := range [][]any{
		{"Alice", "101", "2024-06-01", "2024-06-05", "Checked In"},
		{"Bob", "102", "2024-06-03", "2024-06-04", "Booked"},
		{"Carol", "103", "2024-06-10", "2024-06-12", "Booked"},
		{"Dave", "201", "2024-05-01", "2024-06-03", "Completed"},
	} {
		_, err := s.DB().Exec(insert, row...)
		require.NoError(t, err)
	}

	res, err := svc.Occupancy(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 8)

	byNumber := map[string]dto.OccupancyResponse{}
	for _, room := range res {
		byNumber[room.RoomNumber] = room
	}

	require.NotNil(t, byNumber["101"].Booking)
	assert.Equal(t, "Alice", byNumber["101"].Booking.GuestName)
	assert.Equal(t, "Checked In", byNumber["101"].Booking.Status)
	assert.Equal(t, "2024-06-01", byNumber["101"].Booking.CheckIn.String())
	assert.Equal(t, "2024-06-05", byNumber["101"].Booking.CheckOut.String())

	require.NotNil(t, byNumber["102"].Booking)
	assert.Equal(t, "Bob", byNumber["102"].Booking.GuestName)

	assert.Nil(t, byNumber["103"].Booking, "future stay does not cover today")
	assert.Nil(t, byNumber["201"].Booking, "completed stay is not active")

	assert.Equal(t, "101", res[0].RoomNumber)
	assert.Equal(t, "401", res[7].RoomNumber)

	again, err := svc.Occupancy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestRoomService_CountsSeededStore(t *testing.T) {
	s := storetest.New(t)
	svc := service.New(repository.New(s, mocks.NewOtel()), mocks.NewOtel())

	res, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.CountsResponse{Total: 8, Available: 8}, res)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.True(t, list.HasAvailable)
	assert.Equal(t, "101", list.Rooms[0].RoomNumber)
}
