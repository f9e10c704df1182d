package main

import (
	"context"
	"frontdesk/config"
	"frontdesk/di"
	"frontdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app, cleanup, err := di.InitializeApp()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer cleanup()

	mismatches, err := app.Bookings.VerifyRoomStatus(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Failed to verify room status")
	} else if len(mismatches) > 0 {
		log.Warn().Int("rooms", len(mismatches)).Msg("Room status disagrees with active bookings")
	}

	app.HTTP.Serve()
}
