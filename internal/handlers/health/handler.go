package health

import (
	"context"
	"net/http"

	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Prober is the store as seen by the health check.
type Prober interface {
	Acquire(ctx context.Context) error
	Driver() string
}

type Status struct {
	Status string `json:"status"`
	Driver string `json:"driver"`
}

type Handler struct {
	store Prober
}

func New(store Prober) Handler {
	return Handler{store: store}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/healthz", h.Health)
}

// Health reports 503 when the store cannot be used, even after recovery.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Acquire(r.Context()); err != nil {
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, Status{Status: "ok", Driver: h.store.Driver()})
}
