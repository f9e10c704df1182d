package service_test

import (
	"context"
	"errors"
	"frontdesk/infras/kafka"
	kafkaMocks "frontdesk/infras/kafka/mocks"
	"frontdesk/infras/otel/mocks"
	"frontdesk/infras/store/storetest"
	activityMocks "frontdesk/internal/domains/activity/mocks"
	"frontdesk/internal/domains/activity/model"
	"frontdesk/internal/domains/activity/model/dto"
	"frontdesk/internal/domains/activity/repository"
	"frontdesk/internal/domains/activity/service"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestActivityService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := activityMocks.NewMockActivity(ctrl)
	svc := service.New(mockRepo, nil, mocks.NewOtel())

	t.Run("stores the entry", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry model.Log) (int64, error) {
				assert.Equal(t, "admin", entry.User)
				assert.Equal(t, model.ActionLogin, entry.Action)
				assert.Equal(t, "User admin logged in", entry.Details)
				assert.False(t, entry.Timestamp.IsZero())

				return 1, nil
			})

		svc.Record(context.Background(), "admin", model.ActionLogin, "User admin logged in")
	})

	t.Run("swallows store errors", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(int64(0), errors.New("no such table: activity_logs"))

		assert.NotPanics(t, func() {
			svc.Record(context.Background(), "admin", model.ActionLogout, "User admin logged out")
		})
	})
}

func TestActivityService_RecordPublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := activityMocks.NewMockActivity(ctrl)
	mockEvents := kafkaMocks.NewMockPublisher(ctrl)
	svc := service.New(mockRepo, mockEvents, mocks.NewOtel())

	t.Run("publishes the stored entry", func(t *testing.T) {
		gomock.InOrder(
			mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(7), nil),
			mockEvents.EXPECT().
				Publish(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, messages ...kafka.Message) error {
					require.Len(t, messages, 1)
					assert.Equal(t, model.ActionCheckIn, messages[0].Key)

					event, ok := messages[0].Value.(dto.LogResponse)
					require.True(t, ok)
					assert.Equal(t, int64(7), event.ID)
					assert.Equal(t, "admin", event.User)

					return nil
				}),
		)

		svc.Record(context.Background(), "admin", model.ActionCheckIn, "Alice checked in to Room 101")
	})

	t.Run("skips publishing when the insert fails", func(t *testing.T) {
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk I/O error"))

		svc.Record(context.Background(), "admin", model.ActionCheckOut, "Alice checked out from Room 101")
	})

	t.Run("swallows publish errors", func(t *testing.T) {
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(8), nil)
		mockEvents.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker unreachable"))

		assert.NotPanics(t, func() {
			svc.Record(context.Background(), "admin", model.ActionLogout, "User admin logged out")
		})
	})
}

func TestActivityService_Recent(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "dashboard summary", limit: constant.LogLimitSummary, wantLimit: 10},
		{name: "full view", limit: constant.LogLimitFull, wantLimit: 100},
		{name: "capped", limit: 5000, wantLimit: 100},
		{name: "unset", limit: 0, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := activityMocks.NewMockActivity(ctrl)
			svc := service.New(mockRepo, nil, mocks.NewOtel())

			mockRepo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Log, error) {
					assert.Equal(t, tt.wantLimit, params.Limit)
					assert.Equal(t, "ORDER BY activity_logs.timestamp DESC, activity_logs.id DESC", params.Ordering())

					return []model.Log{{ID: 2, Action: "Login"}, {ID: 1, Action: "System"}}, nil
				})

			res, err := svc.Recent(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Len(t, res, 2)
			assert.Equal(t, int64(2), res[0].ID)
		})
	}

	t.Run("store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := activityMocks.NewMockActivity(ctrl)
		svc := service.New(mockRepo, nil, mocks.NewOtel())

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database is locked"))

		_, err := svc.Recent(context.Background(), 10)
		assert.Error(t, err)
	})
}

func TestActivityService_RecentOrdersNewestFirst(t *testing.T) {
	s := storetest.New(t)
	svc := service.New(repository.New(s, mocks.NewOtel()), nil, mocks.NewOtel())
	ctx := context.Background()

	for _, user := range []string{"alice", "bob", "carol"} {
		svc.Record(ctx, user, model.ActionLogin, "User "+user+" logged in")
		time.Sleep(2 * time.Millisecond)
	}

	res, err := svc.Recent(ctx, constant.LogLimitSummary)
	require.NoError(t, err)

	// two seed entries plus three logins
	require.Len(t, res, 5)
	assert.Equal(t, "carol", res[0].User)
	assert.Equal(t, "bob", res[1].User)
	assert.Equal(t, "alice", res[2].User)
	assert.Equal(t, constant.ContextSystem, res[4].User)

	limited, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestActivityService_RecordStoresActingUser(t *testing.T) {
	s := storetest.New(t)
	svc := service.New(repository.New(s, mocks.NewOtel()), nil, mocks.NewOtel())

	svc.Record(context.Background(), "frontdesk", model.ActionBookingCreated, "Room 101 booked for Alice (2024-06-01 to 2024-06-05)")

	var user string
	err := s.DB().Get(&user, `SELECT username FROM activity_logs WHERE action = ? ORDER BY id DESC LIMIT 1`, model.ActionBookingCreated)
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", user)
}
