// Package session carries the per-request State (the logged in user and the
// flash messages to render) and the cookies that survive between requests.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"frontdesk/config"
	"frontdesk/shared/constant"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Flash categories.
const (
	CategorySuccess = "success"
	CategoryError   = "error"
	CategoryInfo    = "info"
)

const flashMaxAgeSeconds = 60

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// State belongs to one request. Handlers add flashes to it, the view renders
// them, and a redirect carries the pending ones over in the flash cookie.
type State struct {
	User    string
	TokenID string
	Flashes []Flash
}

func (s *State) Add(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

func (s *State) Success(message string) { s.Add(CategorySuccess, message) }

func (s *State) Error(message string) { s.Add(CategoryError, message) }

func (s *State) Info(message string) { s.Add(CategoryInfo, message) }

// LoggedIn reports whether a session was verified for the request.
func (s *State) LoggedIn() bool {
	return s.User != constant.Empty
}

// Drain returns the pending flashes and forgets them.
func (s *State) Drain() []Flash {
	flashes := s.Flashes
	s.Flashes = nil

	return flashes
}

func WithState(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, constant.ContextKeySession, state)
}

// FromContext never returns nil. A request without a state gets a detached one.
func FromContext(ctx context.Context) *State {
	if state, ok := ctx.Value(constant.ContextKeySession).(*State); ok && state != nil {
		return state
	}

	return &State{}
}

type Manager struct {
	config *config.Config
}

func New(cfg *config.Config) *Manager {
	return &Manager{config: cfg}
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.config.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Token returns the session token sent with r, or an empty string.
func (m *Manager) Token(r *http.Request) string {
	cookie, err := r.Cookie(m.config.Session.CookieName)
	if err != nil {
		return constant.Empty
	}

	return cookie.Value
}

// SetToken stores the token in a browser session cookie.
func (m *Manager) SetToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(m.config.Session.CookieName, token, 0))
}

func (m *Manager) ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(m.config.Session.CookieName, constant.Empty, -1))
}

// Load builds the State of r from the flash cookie and clears the cookie.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) *State {
	state := &State{}

	cookie, err := r.Cookie(m.config.Session.FlashCookieName)
	if err != nil {
		return state
	}

	http.SetCookie(w, m.cookie(m.config.Session.FlashCookieName, constant.Empty, -1))

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("ignoring malformed flash cookie")

		return state
	}

	if err := json.Unmarshal(raw, &state.Flashes); err != nil {
		log.Debug().Err(err).Msg("ignoring malformed flash cookie")
	}

	return state
}

// Redirect sends the pending flashes of state along with a 303 to location.
func (m *Manager) Redirect(w http.ResponseWriter, r *http.Request, state *State, location string) {
	if flashes := state.Drain(); len(flashes) > 0 {
		raw, err := json.Marshal(flashes)
		if err == nil {
			http.SetCookie(w, m.cookie(m.config.Session.FlashCookieName,
				base64.RawURLEncoding.EncodeToString(raw), flashMaxAgeSeconds))
		}
	}

	http.Redirect(w, r, location, http.StatusSeeOther)
}
