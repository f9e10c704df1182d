package middleware_test

import (
	"context"
	"errors"
	"frontdesk/config"
	"frontdesk/infras/jwt"
	"frontdesk/infras/otel/mocks"
	authMocks "frontdesk/internal/domains/auth/mocks"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/transport/http/middleware"
	"frontdesk/transport/http/session"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type guardFunc func(ctx context.Context) error

func (f guardFunc) Acquire(ctx context.Context) error { return f(ctx) }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "frontdesk"
	cfg.Session.CookieName = "frontdesk_session"
	cfg.Session.FlashCookieName = "frontdesk_flash"

	return cfg
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestAppMiddleware_Store(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "healthy store", wantCode: http.StatusNoContent},
		{name: "recovery failed", err: errors.New("read-only file system"), wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			guard := guardFunc(func(context.Context) error {
				calls++

				return tt.err
			})

			app := middleware.NewAppMiddleware(mocks.NewOtel(), testConfig(), guard)

			rec := httptest.NewRecorder()
			app.Store(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			assert.Equal(t, 1, calls)
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.err != nil {
				assert.JSONEq(t, `{"message":"SERVER UNHEALTHY"}`, rec.Body.String())
			}
		})
	}
}

func TestAppMiddleware_TracingAndLogKeepStatus(t *testing.T) {
	app := middleware.NewAppMiddleware(mocks.NewOtel(), testConfig(), guardFunc(func(context.Context) error { return nil }))

	rec := httptest.NewRecorder()
	app.Tracing(app.RequestLog(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func withCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "frontdesk_session", Value: token})

	return req
}

func TestSessionMiddleware_Load(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := authMocks.NewMockAuthService(ctrl)
		mw := middleware.NewSessionMiddleware(auth, session.New(testConfig()), mocks.NewOtel())

		auth.EXPECT().Authorize(gomock.Any(), "signed").Return(&jwt.Claims{Username: "admin", TokenID: "t1"}, nil)

		var (
			state *session.State
			user  string
		)

		handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			state = session.FromContext(r.Context())
			user, _ = r.Context().Value(constant.ContextKeyUsername).(string)
		})

		mw.Load(handler).ServeHTTP(httptest.NewRecorder(), withCookie(httptest.NewRequest(http.MethodGet, "/", nil), "signed"))

		require.NotNil(t, state)
		assert.Equal(t, "admin", state.User)
		assert.Equal(t, "t1", state.TokenID)
		assert.Equal(t, "admin", user)
	})

	t.Run("revoked session clears cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := authMocks.NewMockAuthService(ctrl)
		mw := middleware.NewSessionMiddleware(auth, session.New(testConfig()), mocks.NewOtel())

		auth.EXPECT().Authorize(gomock.Any(), "stale").Return(nil, failure.SessionRequired)

		rec := httptest.NewRecorder()
		mw.Load(mw.RequirePage(okHandler)).ServeHTTP(rec, withCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "stale"))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, "frontdesk_session", cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("no cookie skips authorize", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mw := middleware.NewSessionMiddleware(authMocks.NewMockAuthService(ctrl), session.New(testConfig()), mocks.NewOtel())

		rec := httptest.NewRecorder()
		mw.Load(mw.RequireAPI(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Please log in to continue"}`, rec.Body.String())
	})
}
