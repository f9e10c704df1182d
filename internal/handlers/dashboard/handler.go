package dashboard

import (
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/dashboard/model/dto"
	"frontdesk/internal/domains/dashboard/service"
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
	service service.Dashboard
	view    *view.Renderer
	otel    otel.Otel
}

func New(service service.Dashboard, view *view.Renderer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		view:    view,
		otel:    otel,
	}
}

func (handler *Handler) Pages(r chi.Router) {
	r.Get("/dashboard", handler.DashboardPage)
}

func (handler *Handler) API(r chi.Router) {
	r.Get("/dashboard", handler.GetSummary)
}

func (handler *Handler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DashboardPage")
	defer scope.End()

	res, err := handler.service.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard summary")

		session.FromContext(ctx).Error(failure.Message(err))
		handler.view.Render(w, r, failure.GetCode(err), view.PageDashboard, dto.SummaryResponse{})

		return
	}

	handler.view.Render(w, r, http.StatusOK, view.PageDashboard, res)
}

// GetSummary returns counts, active bookings, today's rooms and the latest activity.
// @Summary Dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 500 {object} response.Error
// @Router /api/v1/dashboard [get]
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	res, err := handler.service.Summary(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
