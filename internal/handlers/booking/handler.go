package booking

import (
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/service"
	roomDto "frontdesk/internal/domains/room/model/dto"
	roomService "frontdesk/internal/domains/room/service"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"
	"frontdesk/transport/http/session"
	"frontdesk/transport/http/view"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	msgBookingNotFound = "Booking not found"
	pathDashboard      = "/dashboard"
)

// Form is the data of the booking page.
type Form struct {
	Rooms roomDto.RoomListResponse
	Today string
	Form  dto.CreateBookingRequest
}

type Handler struct {
	service  service.Booking
	rooms    roomService.Room
	sessions *session.Manager
	view     *view.Renderer
	otel     otel.Otel
}

func New(service service.Booking, rooms roomService.Room, sessions *session.Manager, view *view.Renderer, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		rooms:    rooms,
		sessions: sessions,
		view:     view,
		otel:     otel,
	}
}

func (handler *Handler) Pages(r chi.Router) {
	r.Get("/book", handler.BookingPage)
	r.Post("/book", handler.CreateBooking)
	r.Get("/checkin/{id}", handler.transitionPage(model.TransitionCheckIn))
	r.Get("/checkout/{id}", handler.transitionPage(model.TransitionCheckOut))
}

func (handler *Handler) API(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", handler.GetActiveBookings)
		r.Post("/", handler.APICreateBooking)
		r.Post("/{id}/check-in", handler.apiTransition(model.TransitionCheckIn))
		r.Post("/{id}/check-out", handler.apiTransition(model.TransitionCheckOut))
	})
}

func (handler *Handler) BookingPage(w http.ResponseWriter, r *http.Request) {
	handler.renderForm(w, r, http.StatusOK, dto.CreateBookingRequest{})
}

func (handler *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, form dto.CreateBookingRequest) {
	state := session.FromContext(r.Context())

	rooms, err := handler.rooms.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load rooms for booking form")

		state.Error(failure.Message(err))
		handler.sessions.Redirect(w, r, state, pathDashboard)

		return
	}

	handler.view.Render(w, r, status, view.PageBooking, Form{
		Rooms: rooms,
		Today: gModel.Today().String(),
		Form:  form,
	})
}

func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	state := session.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		log.Warn().Err(err).Msg("failed to parse booking form")
	}

	req := dto.CreateBookingRequest{
		GuestName: r.PostFormValue("guest_name"),
		RoomID:    r.PostFormValue("room_id"),
		CheckIn:   r.PostFormValue("check_in"),
		CheckOut:  r.PostFormValue("check_out"),
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		state.Error(failure.Message(err))

		if failure.GetCode(err) == http.StatusInternalServerError {
			handler.sessions.Redirect(w, r, state, pathDashboard)

			return
		}

		handler.renderForm(w, r.WithContext(ctx), failure.GetCode(err), req)

		return
	}

	state.Success(res.Message)
	handler.sessions.Redirect(w, r, state, pathDashboard)
}

// transitionPage applies a check-in or check-out and always returns to the dashboard.
func (handler *Handler) transitionPage(transition model.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Transition")
		defer scope.End()

		state := session.FromContext(ctx)

		res, err := handler.transition(r.WithContext(ctx), transition)
		if err != nil {
			scope.TraceError(err)
			state.Error(failure.Message(err))
		} else {
			state.Success(res.Message)
		}

		handler.sessions.Redirect(w, r, state, pathDashboard)
	}
}

func (handler *Handler) transition(r *http.Request, transition model.Transition) (dto.ResultResponse, error) {
	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), msgBookingNotFound)
	if err != nil {
		return dto.ResultResponse{}, err
	}

	return handler.service.Transition(r.Context(), id, transition)
}

// GetActiveBookings lists bookings that still hold a room.
// @Summary Active bookings
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[[]dto.BookingResponse]
// @Failure 500 {object} response.Error
// @Router /api/v1/bookings [get]
func (handler *Handler) GetActiveBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveBookings")
	defer scope.End()

	res, err := handler.service.Active(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// APICreateBooking books a room.
// @Summary Create booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking Request"
// @Success 201 {object} response.Data[dto.ResultResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /api/v1/bookings [post]
func (handler *Handler) APICreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".APICreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// apiTransition serves check-in and check-out.
// @Summary Check in or check out
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.ResultResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /api/v1/bookings/{id}/check-in [post]
// @Router /api/v1/bookings/{id}/check-out [post]
func (handler *Handler) apiTransition(transition model.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".APITransition")
		defer scope.End()

		res, err := handler.transition(r.WithContext(ctx), transition)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		response.WithJSON(w, http.StatusOK, res)
	}
}
