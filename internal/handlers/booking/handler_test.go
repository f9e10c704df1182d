package booking_test

import (
	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	bookingMocks "frontdesk/internal/domains/booking/mocks"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	roomMocks "frontdesk/internal/domains/room/mocks"
	roomDto "frontdesk/internal/domains/room/model/dto"
	"frontdesk/internal/handlers/booking"
	"frontdesk/shared/failure"
	"frontdesk/transport/http/session"
	"frontdesk/transport/http/view"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	bookings *bookingMocks.MockBookingService
	rooms    *roomMocks.MockRoomService
	sessions *session.Manager
	router   chi.Router
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "frontdesk"
	cfg.Session.CookieName = "frontdesk_session"
	cfg.Session.FlashCookieName = "frontdesk_flash"

	renderer, err := view.New(cfg)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	f := fixture{
		bookings: bookingMocks.NewMockBookingService(ctrl),
		rooms:    roomMocks.NewMockRoomService(ctrl),
		sessions: session.New(cfg),
		router:   chi.NewRouter(),
	}

	handler := booking.New(f.bookings, f.rooms, f.sessions, renderer, mocks.NewOtel())

	// one state per request, shared by the handler and the renderer
	f.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.WithState(r.Context(), &session.State{User: "admin"})))
		})
	})
	handler.Pages(f.router)
	f.router.Route("/api/v1", handler.API)

	return f
}

// flashes follows the redirect cookie the way a browser would.
func (f fixture) flashes(rec *httptest.ResponseRecorder) []session.Flash {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}

	return f.sessions.Load(httptest.NewRecorder(), req).Flashes
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func TestBookingHandler_CreateBookingPage(t *testing.T) {
	form := url.Values{
		"guest_name": {"Alice"},
		"room_id":    {"1"},
		"check_in":   {"2024-06-01"},
		"check_out":  {"2024-06-05"},
	}

	t.Run("success redirects with flash", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().
			Create(gomock.Any(), dto.CreateBookingRequest{GuestName: "Alice", RoomID: "1", CheckIn: "2024-06-01", CheckOut: "2024-06-05"}).
			Return(dto.ResultResponse{Message: "Room 101 booked successfully for Alice!"}, nil)

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, formRequest(form))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
		assert.Equal(t, []session.Flash{{Category: "success", Message: "Room 101 booked successfully for Alice!"}}, f.flashes(rec))
	})

	t.Run("rejection re-renders the form", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(dto.ResultResponse{}, failure.Conflict("Room 101 is already booked for the selected dates"))
		f.rooms.EXPECT().List(gomock.Any()).Return(roomDto.RoomListResponse{
			Rooms:        []roomDto.RoomResponse{{ID: 1, RoomNumber: "101", Status: "Booked"}},
			HasAvailable: false,
		}, nil)

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, formRequest(form))

		assert.Equal(t, http.StatusConflict, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "Room 101 is already booked for the selected dates")
		assert.Contains(t, body, `value="Alice"`)
		assert.Contains(t, body, "No rooms are available right now.")
		assert.Contains(t, body, `<option value="1" selected>`)
	})
}

func TestBookingHandler_BookingPage(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().List(gomock.Any()).Return(roomDto.RoomListResponse{
		Rooms:        []roomDto.RoomResponse{{ID: 2, RoomNumber: "102", Status: "Available"}},
		HasAvailable: true,
	}, nil)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/book", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Room 102 (Available)")
	assert.NotContains(t, rec.Body.String(), "No rooms are available right now.")
}

func TestBookingHandler_TransitionPages(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		setupMock func(f fixture)
		want      session.Flash
	}{
		{
			name: "check in",
			path: "/checkin/3",
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Transition(gomock.Any(), int64(3), model.TransitionCheckIn).
					Return(dto.ResultResponse{Message: "Check-in successful for Room 101!"}, nil)
			},
			want: session.Flash{Category: "success", Message: "Check-in successful for Room 101!"},
		},
		{
			name: "check out rejected",
			path: "/checkout/3",
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Transition(gomock.Any(), int64(3), model.TransitionCheckOut).
					Return(dto.ResultResponse{}, failure.Conflict("This booking cannot be checked out"))
			},
			want: session.Flash{Category: "error", Message: "This booking cannot be checked out"},
		},
		{
			name:      "malformed id",
			path:      "/checkin/abc",
			setupMock: func(fixture) {},
			want:      session.Flash{Category: "error", Message: "Booking not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
			assert.Equal(t, []session.Flash{tt.want}, f.flashes(rec))
		})
	}
}

func TestBookingHandler_API(t *testing.T) {
	t.Run("create conflict", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Create(gomock.Any(), dto.CreateBookingRequest{GuestName: "Bob", RoomID: "1", CheckIn: "2024-06-03", CheckOut: "2024-06-04"}).
			Return(dto.ResultResponse{}, failure.Conflict("Room 101 is already booked for the selected dates"))

		body := `{"guest_name":"Bob","room_id":"1","check_in":"2024-06-03","check_out":"2024-06-04"}`

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":"Room 101 is already booked for the selected dates"}`, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("check out", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Transition(gomock.Any(), int64(9), model.TransitionCheckOut).
			Return(dto.ResultResponse{
				Message: "Check-out successful for Room 101!",
				Booking: dto.BookingResponse{ID: 9, RoomNumber: "101", Status: model.StatusCompleted},
			}, nil)

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings/9/check-out", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"Check-out successful for Room 101!"`)
		assert.Contains(t, rec.Body.String(), `"status":"Completed"`)
	})

	t.Run("active bookings", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Active(gomock.Any()).Return([]dto.BookingResponse{{ID: 1, GuestName: "Alice"}}, nil)

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"guest_name":"Alice"`)
	})
}
