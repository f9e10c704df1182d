package activity

import (
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/activity/service"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/transport/http/response"
	"frontdesk/transport/http/session"
	"frontdesk/transport/http/view"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Activity
	view    *view.Renderer
	otel    otel.Otel
}

func New(service service.Activity, view *view.Renderer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		view:    view,
		otel:    otel,
	}
}

func (handler *Handler) Pages(r chi.Router) {
	r.Get("/logs", handler.LogsPage)
}

func (handler *Handler) API(r chi.Router) {
	r.Get("/logs", handler.GetLogs)
}

func (handler *Handler) LogsPage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".LogsPage")
	defer scope.End()

	res, err := handler.service.Recent(ctx, constant.LogLimitFull)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activity logs")

		session.FromContext(ctx).Error(failure.Message(err))
		handler.view.Render(w, r, failure.GetCode(err), view.PageLogs, nil)

		return
	}

	handler.view.Render(w, r, http.StatusOK, view.PageLogs, res)
}

// GetLogs returns the newest activity entries. limit is capped at 100.
// @Summary Activity logs
// @Tags Activity
// @Produce json
// @Param limit query int false "Number of entries"
// @Success 200 {object} response.Data[[]dto.LogResponse]
// @Failure 500 {object} response.Error
// @Router /api/v1/logs [get]
func (handler *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	res, err := handler.service.Recent(ctx, queryParams.Limit)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
