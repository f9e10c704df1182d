package middleware

import (
	"context"
	"frontdesk/infras/otel"
	authService "frontdesk/internal/domains/auth/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/transport/http/response"
	"frontdesk/transport/http/session"
	"net/http"

	"github.com/rs/zerolog/log"
)

const loginPath = "/"

// Session attaches the per-request session state and guards the protected routes.
type Session interface {
	// Load reads the pending flashes and, when the cookie is valid, the user.
	Load(next http.Handler) http.Handler
	// RequirePage redirects to the login page when nobody is logged in.
	RequirePage(next http.Handler) http.Handler
	// RequireAPI answers 401 when nobody is logged in.
	RequireAPI(next http.Handler) http.Handler
}

type sessionMiddleware struct {
	auth     authService.Auth
	sessions *session.Manager
	otel     otel.Otel
}

func NewSessionMiddleware(auth authService.Auth, sessions *session.Manager, otel otel.Otel) Session {
	return &sessionMiddleware{
		auth:     auth,
		sessions: sessions,
		otel:     otel,
	}
}

func (m *sessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "session.middleware")

		state := m.sessions.Load(w, r)

		if token := m.sessions.Token(r); token != constant.Empty {
			claims, err := m.auth.Authorize(ctx, token)

			switch {
			case err == nil:
				state.User = claims.Username
				state.TokenID = claims.TokenID
				ctx = context.WithValue(ctx, constant.ContextKeyUsername, claims.Username)
				ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)
			case failure.GetCode(err) == http.StatusUnauthorized:
				m.sessions.ClearToken(w)
			default:
				scope.TraceError(err)
				log.Error().Err(err).Msg("failed to verify session")
			}
		}

		scope.End()

		next.ServeHTTP(w, r.WithContext(session.WithState(ctx, state)))
	})
}

func (m *sessionMiddleware) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := session.FromContext(r.Context())
		if !state.LoggedIn() {
			m.sessions.Redirect(w, r, state, loginPath)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *sessionMiddleware) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).LoggedIn() {
			response.WithError(w, failure.SessionRequired)

			return
		}

		next.ServeHTTP(w, r)
	})
}
