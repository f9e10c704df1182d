package di

import (
	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/infras/s3"
	"frontdesk/infras/store"
	bookingService "frontdesk/internal/domains/booking/service"
	"frontdesk/transport/http"
)

// App is what the entry points need from the graph.
type App struct {
	HTTP     *http.HTTP
	Bookings bookingService.Booking
}

func provideStore(cfg *config.Config, otl otel.Otel, archiver s3.S3) (*store.Store, func(), error) {
	return store.New(cfg, otl, archiver)
}
