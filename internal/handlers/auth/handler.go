package auth

import (
	"frontdesk/infras/jwt"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/auth/model/dto"
	"frontdesk/internal/domains/auth/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"
	"frontdesk/transport/http/session"
	"frontdesk/transport/http/view"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	msgLoginSuccessful = "Login successful!"
	msgLoggedOut       = "You have been logged out"

	pathLogin     = "/"
	pathDashboard = "/dashboard"
)

type Handler struct {
	service  service.Auth
	sessions *session.Manager
	view     *view.Renderer
	otel     otel.Otel
}

func New(service service.Auth, sessions *session.Manager, view *view.Renderer, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		sessions: sessions,
		view:     view,
		otel:     otel,
	}
}

// Public mounts the login form, the only page reachable without a session.
func (handler *Handler) Public(r chi.Router) {
	r.Get("/", handler.LoginPage)
	r.Post("/", handler.Login)
}

func (handler *Handler) Pages(r chi.Router) {
	r.Get("/logout", handler.Logout)
}

func (handler *Handler) PublicAPI(r chi.Router) {
	r.Post("/auth/login", handler.APILogin)
}

func (handler *Handler) API(r chi.Router) {
	r.Post("/auth/logout", handler.APILogout)
}

func (handler *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	state := session.FromContext(r.Context())

	if state.LoggedIn() {
		handler.sessions.Redirect(w, r, state, pathDashboard)

		return
	}

	handler.view.Render(w, r, http.StatusOK, view.PageLogin, nil)
}

func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	state := session.FromContext(ctx)

	if state.LoggedIn() {
		handler.sessions.Redirect(w, r, state, pathDashboard)

		return
	}

	if err := r.ParseForm(); err != nil {
		log.Warn().Err(err).Msg("failed to parse login form")
	}

	req := dto.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)

		state.Error(failure.Message(err))
		handler.view.Render(w, r, failure.GetCode(err), view.PageLogin, nil)

		return
	}

	handler.sessions.SetToken(w, res.Token)

	state.User = res.Username
	state.Success(msgLoginSuccessful)
	handler.sessions.Redirect(w, r, state, pathDashboard)
}

func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	state := session.FromContext(ctx)

	if err := handler.service.Logout(ctx, &jwt.Claims{Username: state.User, TokenID: state.TokenID}); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to log out")
	}

	handler.sessions.ClearToken(w)

	state.User = constant.Empty
	state.Info(msgLoggedOut)
	handler.sessions.Redirect(w, r, state, pathLogin)
}

// APILogin opens a session and sets the same cookie as the login form.
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /api/v1/auth/login [post]
func (handler *Handler) APILogin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".APILogin")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	handler.sessions.SetToken(w, res.Token)

	response.WithJSON(w, http.StatusOK, res)
}

// APILogout revokes the current session.
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Router /api/v1/auth/logout [post]
func (handler *Handler) APILogout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".APILogout")
	defer scope.End()

	state := session.FromContext(ctx)

	if err := handler.service.Logout(ctx, &jwt.Claims{Username: state.User, TokenID: state.TokenID}); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to log out")

		response.WithError(w, err)

		return
	}

	handler.sessions.ClearToken(w)

	response.WithMessage(w, http.StatusOK, msgLoggedOut)
}
