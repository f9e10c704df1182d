package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"5000"`
		Host     string `envconfig:"HOST"      default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"frontdesk"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		Seed struct {
			AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
			AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
		} `envconfig:"SEED"`
	} `envconfig:"APP"`

	Session struct {
		CookieName      string `envconfig:"COOKIE_NAME"       default:"frontdesk_session"`
		FlashCookieName string `envconfig:"FLASH_COOKIE_NAME" default:"frontdesk_flash"`
		Secret          string `envconfig:"SECRET"            default:"hotel_secret_key_2024_secure"`
		Secure          bool   `envconfig:"SECURE"`
	} `envconfig:"SESSION"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	DB struct {
		Driver      string `envconfig:"DRIVER"       default:"sqlite"`
		AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"true"`
		SQLite      struct {
			Path          string `envconfig:"PATH"            default:"hotel.db"`
			BusyTimeoutMS int    `envconfig:"BUSY_TIMEOUT_MS" default:"5000"`
		} `envconfig:"SQLITE"`
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			Prefix         string `envconfig:"PREFIX"`
			Host           string `envconfig:"HOST"`
			Port           string `envconfig:"PORT"     default:"5432"`
			Username       string `envconfig:"USER"`
			Password       string `envconfig:"PASSWORD"`
			Name           string `envconfig:"NAME"`
			SSLMode        string `envconfig:"SSL_MODE" default:"disable"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
		Kafka struct {
			Brokers []string `envconfig:"BROKERS"`
			Topic   string   `envconfig:"TOPIC" default:"frontdesk.activity"`
			SASL    struct {
				Username string `envconfig:"USERNAME"`
				Password string `envconfig:"PASSWORD"`
			} `envconfig:"SASL"`
		} `envconfig:"KAFKA"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}

// S3Enabled reports whether corrupted store files should be archived to object storage.
func (c *Config) S3Enabled() bool {
	return c.External.S3.BucketName != "" && c.External.S3.APIEndpoint != ""
}

// RedisEnabled reports whether sessions are kept in redis instead of process memory.
func (c *Config) RedisEnabled() bool {
	return c.Cache.Redis.Primary.Host != ""
}

// KafkaEnabled reports whether activity entries are also published as events.
func (c *Config) KafkaEnabled() bool {
	return len(c.External.Kafka.Brokers) > 0
}
