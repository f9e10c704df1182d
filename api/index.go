package handler

import (
	"frontdesk/config"
	"frontdesk/di"
	"frontdesk/shared/logger"
	"frontdesk/transport/http/response"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	app     *di.App
	initErr error
	once    sync.Once
)

// Handler serves the application as a single serverless function. The graph
// is built on the first request and reused by warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())

		app, _, initErr = di.InitializeApp()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize application")
		response.WithUnhealthy(w)

		return
	}

	app.HTTP.ServeHTTP(w, r)
}
