// Package view renders the HTML pages. Every page is parsed together with the
// shared layout at startup.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"frontdesk/config"
	"frontdesk/shared/constant"
	"frontdesk/transport/http/session"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	PageLogin     = "login"
	PageDashboard = "dashboard"
	PageRooms     = "rooms"
	PageBooking   = "booking"
	PageLogs      = "logs"
)

const layoutFile = "templates/layout.html"

//go:embed templates/*.html
var templates embed.FS

var pages = []string{PageLogin, PageDashboard, PageRooms, PageBooking, PageLogs}

// Page is the root object every template receives.
type Page struct {
	AppName string
	User    string
	Flashes []session.Flash
	Data    any
}

type Renderer struct {
	config *config.Config
	pages  map[string]*template.Template
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"slug": func(status string) string {
		return strings.ReplaceAll(strings.ToLower(status), " ", "-")
	},
}

func New(cfg *config.Config) (*Renderer, error) {
	renderer := &Renderer{
		config: cfg,
		pages:  make(map[string]*template.Template, len(pages)),
	}

	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templates, layoutFile, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}

		renderer.pages[name] = tmpl
	}

	return renderer, nil
}

// Render writes page with status. The pending flashes of the request state
// are consumed by the page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	tmpl, ok := r.pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	state := session.FromContext(req.Context())

	page := Page{
		AppName: r.config.App.Name,
		User:    state.User,
		Flashes: state.Drain(),
		Data:    data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		log.Error().Err(err).Str("page", name).Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeHTML)
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Str("page", name).Msg("failed to write page")
	}
}
