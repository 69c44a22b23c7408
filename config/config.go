package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	App struct {
		Name           string `envconfig:"NAME" default:"campus"`
		Env            string `envconfig:"ENV" default:"development"`
		LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
		UTCOffsetHours int    `envconfig:"UTC_OFFSET_HOURS" default:"9"`
	} `envconfig:"APP"`

	API struct {
		BaseURL        string `envconfig:"BASE_URL" default:"http://localhost:8080"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
	} `envconfig:"API"`

	Session struct {
		// Dir overrides the directory holding the session file. Empty
		// means the OS user config directory.
		Dir string `envconfig:"DIR"`
	} `envconfig:"SESSION"`

	Reservation struct {
		SlotHours     int `envconfig:"SLOT_HOURS" default:"2"`
		SeatHoldHours int `envconfig:"SEAT_HOLD_HOURS" default:"2"`
	} `envconfig:"RESERVATION"`

	Stub struct {
		Host string `envconfig:"HOST" default:"0.0.0.0"`
		Port string `envconfig:"PORT" default:"8080"`
		CORS struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS" default:"Accept,Authorization,Content-Type,X-Request-ID"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS" default:"GET,POST,PUT,OPTIONS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
		} `envconfig:"CORS"`
	} `envconfig:"STUB"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET" default:"campus-dev-secret"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"120"`
	} `envconfig:"JWT"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
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
			log.Debug().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true
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
