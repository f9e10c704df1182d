package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"frontdesk/config"
	"frontdesk/migrations"
	"net"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// DatabaseURL builds the migrate URL for the configured dialect.
func DatabaseURL(cfg *config.Config) (string, error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		return "sqlite://" + cfg.DB.SQLite.Path, nil
	case config.DriverPostgres:
		pg := cfg.DB.Postgres

		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
			url.QueryEscape(pg.Username),
			url.QueryEscape(pg.Password),
			net.JoinHostPort(pg.Host, pg.Port),
			getDBName(cfg, pg.Name),
			pg.SSLMode,
			pg.MigrationTable,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	databaseURL, err := DatabaseURL(config)
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrations.FS, config.DB.Driver)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) (err error) {
	mig, err := getConnection(config)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		srcErr, dbErr := mig.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Debug().Str("driver", config.DB.Driver).Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("unknown migration action %q", action)
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}
