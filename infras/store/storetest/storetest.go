// Package storetest opens throwaway sqlite stores for integration tests.
package storetest

import (
	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	"frontdesk/infras/store"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Config returns the loaded configuration pointed at a sqlite file inside a
// temporary directory owned by t.
func Config(t testing.TB) *config.Config {
	t.Helper()

	cfg := *config.Get()
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.AutoMigrate = true
	cfg.DB.SQLite.Path = filepath.Join(t.TempDir(), "hotel.db")
	cfg.DB.SQLite.BusyTimeoutMS = 5000
	cfg.App.Seed.AdminUsername = "admin"
	cfg.App.Seed.AdminPassword = "admin123"

	return &cfg
}

// New opens a seeded store that is closed when the test ends.
func New(t testing.TB, opts ...store.Option) *store.Store {
	t.Helper()

	s, cleanup, err := store.New(Config(t), mocks.NewOtel(), nil, opts...)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return s
}
