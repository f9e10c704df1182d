package room

import (
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/room/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/transport/http/response"
	"frontdesk/transport/http/session"
	"frontdesk/transport/http/view"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	view    *view.Renderer
	otel    otel.Otel
}

func New(service service.Room, view *view.Renderer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		view:    view,
		otel:    otel,
	}
}

func (handler *Handler) Pages(r chi.Router) {
	r.Get("/rooms", handler.RoomsPage)
}

func (handler *Handler) API(r chi.Router) {
	r.Get("/rooms", handler.GetRooms)
}

func (handler *Handler) RoomsPage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RoomsPage")
	defer scope.End()

	res, err := handler.service.Occupancy(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		session.FromContext(ctx).Error(failure.Message(err))
		handler.view.Render(w, r, failure.GetCode(err), view.PageRooms, nil)

		return
	}

	handler.view.Render(w, r, http.StatusOK, view.PageRooms, res)
}

// GetRooms lists every room with the booking covering today.
// @Summary Rooms
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[[]dto.OccupancyResponse]
// @Failure 500 {object} response.Error
// @Router /api/v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	res, err := handler.service.Occupancy(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
