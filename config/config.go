package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	defaultHoldTTLMinutes     = 15
	defaultSoftHoldMinutes    = 15
	defaultLockTimeoutSeconds = 60
	defaultPurgeSchedule      = "@every 1m"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL             int `envconfig:"TTL"`
		AvailabilityTTL int `envconfig:"AVAILABILITY_TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			TxIsolation    string `envconfig:"TX_ISOLATION"`
			TxMaxRetry     int    `envconfig:"TX_MAX_RETRY"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			RefundRequested string `envconfig:"REFUND_REQUESTED" default:"payment.refund.requested"`
			RefundStatus    string `envconfig:"REFUND_STATUS"    default:"payment.refund.status"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Reservation Reservation `envconfig:"RESERVATION"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

// Reservation holds the admission-control knobs. Zero values fall back to the
// production defaults so hand-built configs in tests behave the same way.
type Reservation struct {
	HoldTTLMinutes     int    `envconfig:"HOLD_TTL_MINUTES"`
	SoftHoldMinutes    int    `envconfig:"SOFT_HOLD_MINUTES"`
	LockTimeoutSeconds int    `envconfig:"LOCK_TIMEOUT_SECONDS"`
	PurgeSchedule      string `envconfig:"PURGE_SCHEDULE"`
}

func (r Reservation) HoldTTL() time.Duration {
	if r.HoldTTLMinutes <= 0 {
		return defaultHoldTTLMinutes * time.Minute
	}

	return time.Duration(r.HoldTTLMinutes) * time.Minute
}

func (r Reservation) SoftHoldWindow() time.Duration {
	if r.SoftHoldMinutes <= 0 {
		return defaultSoftHoldMinutes * time.Minute
	}

	return time.Duration(r.SoftHoldMinutes) * time.Minute
}

func (r Reservation) LockTimeout() time.Duration {
	if r.LockTimeoutSeconds <= 0 {
		return defaultLockTimeoutSeconds * time.Second
	}

	return time.Duration(r.LockTimeoutSeconds) * time.Second
}

func (r Reservation) PurgeSpec() string {
	if r.PurgeSchedule == "" {
		return defaultPurgeSchedule
	}

	return r.PurgeSchedule
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
		return fmt.Errorf("processing environment: %w", err)
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
