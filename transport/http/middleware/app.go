package middleware

import (
	"context"
	"fmt"
	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/shared/constant"
	"frontdesk/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"
)

// StoreGuard is acquired once per request before any handler reads the store.
type StoreGuard interface {
	Acquire(ctx context.Context) error
}

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RequestLog(next http.Handler) http.Handler
	Store(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	guard  StoreGuard
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, guard StoreGuard) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		guard:  guard,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer scope.End()

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		scope.SetAttributes(map[string]any{
			"app.name":         a.config.App.Name,
			"http.path":        r.URL.Path,
			"http.route":       route,
			"http.method":      r.Method,
			"http.user_agent":  r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":        r.Host,
			"http.source":      r.RemoteAddr,
			"http.status_code": ww.Status(),
		})
	})
}

// RequestLog writes one zerolog line per request.
func (a *appMiddleware) RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		event := log.Info()
		if ww.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Msg("request handled")
	})
}

// Store makes sure the store is usable, recreating it when it was deleted or
// corrupted. When even that fails the request ends with 503.
func (a *appMiddleware) Store(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := a.guard.Acquire(r.Context()); err != nil {
			log.Error().Err(err).Str("path", r.URL.Path).Msg("store is unavailable")
			response.WithUnhealthy(w)

			return
		}

		next.ServeHTTP(w, r)
	})
}
