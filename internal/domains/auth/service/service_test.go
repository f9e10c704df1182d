package service_test

import (
	"context"
	"errors"
	"frontdesk/config"
	"frontdesk/infras/jwt"
	jwtMocks "frontdesk/infras/jwt/mocks"
	"frontdesk/infras/otel/mocks"
	activityMocks "frontdesk/internal/domains/activity/mocks"
	activityModel "frontdesk/internal/domains/activity/model"
	"frontdesk/internal/domains/auth/model/dto"
	"frontdesk/internal/domains/auth/service"
	userMocks "frontdesk/internal/domains/user/mocks"
	userModel "frontdesk/internal/domains/user/model"
	"frontdesk/shared/cache"
	cacheMocks "frontdesk/shared/cache/mocks"
	"frontdesk/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var admin = userModel.User{ID: 1, Username: "admin", Password: "admin123"}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "frontdesk"
	cfg.Session.Secret = "test-secret"

	return cfg
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(users *userMocks.MockUser, activity *activityMocks.MockActivityService)
		wantMsg   string
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: " admin ", Password: "admin123"},
			setupMock: func(users *userMocks.MockUser, activity *activityMocks.MockActivityService) {
				users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				activity.EXPECT().Record(gomock.Any(), "admin", activityModel.ActionLogin, "User admin logged in")
			},
		},
		{
			name:      "blank username",
			req:       dto.LoginRequest{Username: "   ", Password: "admin123"},
			setupMock: func(*userMocks.MockUser, *activityMocks.MockActivityService) {},
			wantMsg:   "Please enter both username and password",
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "blank password",
			req:       dto.LoginRequest{Username: "admin"},
			setupMock: func(*userMocks.MockUser, *activityMocks.MockActivityService) {},
			wantMsg:   "Please enter both username and password",
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown user",
			req:  dto.LoginRequest{Username: "ghost", Password: "admin123"},
			setupMock: func(users *userMocks.MockUser, _ *activityMocks.MockActivityService) {
				users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantMsg:  "Invalid username or password",
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "admin", Password: "Admin123"},
			setupMock: func(users *userMocks.MockUser, _ *activityMocks.MockActivityService) {
				users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
			},
			wantMsg:  "Invalid username or password",
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "store error",
			req:  dto.LoginRequest{Username: "admin", Password: "admin123"},
			setupMock: func(users *userMocks.MockUser, _ *activityMocks.MockActivityService) {
				users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database is locked"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := userMocks.NewMockUser(ctrl)
			activity := activityMocks.NewMockActivityService(ctrl)
			sessions := cache.NewMemoryCache()
			tt.setupMock(users, activity)

			svc := service.New(users, sessions, activity, mocks.NewOtel(), jwt.New(testConfig()))

			res, err := svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, failure.Message(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "admin", res.Username)
			assert.NotEmpty(t, res.Token)

			var session dto.Session
			require.NoError(t, sessions.Get(context.Background(), dto.SessionKey(res.TokenID), &session))
			assert.Equal(t, "admin", session.Username)
		})
	}
}

func TestAuthService_LoginTokenError(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	sessions := cacheMocks.NewMockCache(ctrl)

	svc := service.New(users, sessions, activityMocks.NewMockActivityService(ctrl), mocks.NewOtel(), mockJWT)

	users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
	mockJWT.EXPECT().Generate("admin").Return("", nil, errors.New("sign failed"))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	assert.Error(t, err)
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := userMocks.NewMockUser(ctrl)
	activity := activityMocks.NewMockActivityService(ctrl)

	svc := service.New(users, cache.NewMemoryCache(), activity, mocks.NewOtel(), jwt.New(testConfig()))
	ctx := context.Background()

	users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
	activity.EXPECT().Record(gomock.Any(), "admin", activityModel.ActionLogin, gomock.Any())

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	claims, err := svc.Authorize(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, login.TokenID, claims.TokenID)

	activity.EXPECT().Record(gomock.Any(), "admin", activityModel.ActionLogout, "User admin logged out")
	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.Authorize(ctx, login.Token)
	assert.ErrorIs(t, err, failure.SessionRequired)
}

func TestAuthService_Authorize(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := service.New(userMocks.NewMockUser(ctrl), cache.NewMemoryCache(),
				activityMocks.NewMockActivityService(ctrl), mocks.NewOtel(), jwt.New(testConfig()))

			_, err := svc.Authorize(context.Background(), tt.token)
			assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
		})
	}

	t.Run("signed by another secret", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		other := testConfig()
		other.Session.Secret = "other-secret"

		token, _, err := jwt.New(other).Generate("admin")
		require.NoError(t, err)

		svc := service.New(userMocks.NewMockUser(ctrl), cache.NewMemoryCache(),
			activityMocks.NewMockActivityService(ctrl), mocks.NewOtel(), jwt.New(testConfig()))

		_, err = svc.Authorize(context.Background(), token)
		assert.ErrorIs(t, err, failure.SessionRequired)
	})

	t.Run("session store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sessions := cacheMocks.NewMockCache(ctrl)

		token, _, err := jwt.New(testConfig()).Generate("admin")
		require.NoError(t, err)

		sessions.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		svc := service.New(userMocks.NewMockUser(ctrl), sessions,
			activityMocks.NewMockActivityService(ctrl), mocks.NewOtel(), jwt.New(testConfig()))

		_, err = svc.Authorize(context.Background(), token)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_LogoutWithoutClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.New(userMocks.NewMockUser(ctrl), cacheMocks.NewMockCache(ctrl),
		activityMocks.NewMockActivityService(ctrl), mocks.NewOtel(), jwt.New(testConfig()))

	assert.NoError(t, svc.Logout(context.Background(), nil))
}
