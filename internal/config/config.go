package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the runtime configuration shared by the API server and catalogctl.
type Config struct {
	Port             int           `koanf:"port" validate:"gte=1,lte=65535"`
	Env              string        `koanf:"env" validate:"oneof=dev test staging prod"`
	DB               DBConfig      `koanf:"db"`
	TMDB             TMDBConfig    `koanf:"tmdb"`
	Catalog          CatalogConfig `koanf:"catalog"`
	CORS             CORSConfig    `koanf:"cors"`
	RateLimit        RateLimit     `koanf:"rate_limit"`
	OtelCollectorUrl string        `koanf:"otel_collector_url"`
}

type DBConfig struct {
	DSN          string        `koanf:"dsn" validate:"required"`
	MaxOpenConns int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleTime  time.Duration `koanf:"max_idle_time" validate:"gt=0"`
}

// TMDBConfig configures the metadata provider. An empty APIKey is allowed:
// the trailer route then answers with a configuration error.
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gte=0"`
}

type CatalogConfig struct {
	DefaultLimit   int `koanf:"default_limit" validate:"gte=1"`
	MaxLimit       int `koanf:"max_limit" validate:"gtefield=DefaultLimit"`
	DefaultYearMin int `koanf:"default_year_min" validate:"gte=1800"`
	DefaultYearMax int `koanf:"default_year_max" validate:"gtefield=DefaultYearMin"`
}

type CORSConfig struct {
	Origins []string `koanf:"origins" validate:"dive,required"`
}

type RateLimit struct {
	Requests int           `koanf:"requests" validate:"gte=1"`
	Window   time.Duration `koanf:"window" validate:"gt=0"`
	Disabled bool          `koanf:"disabled"`
}

func defaultConfig() *Config {
	return &Config{
		Port: 3000,
		Env:  "dev",
		DB: DBConfig{
			MaxOpenConns: 25,
			MaxIdleTime:  15 * time.Minute,
		},
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 4,
		},
		Catalog: CatalogConfig{
			DefaultLimit:   1000,
			MaxLimit:       1000,
			DefaultYearMin: 1900,
			DefaultYearMax: 2024,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		RateLimit: RateLimit{
			Requests: 100,
			Window:   time.Minute,
		},
	}
}

// Validate checks the loaded configuration against its struct tags.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, len(verrs))
	for i, fe := range verrs {
		errs[i] = fmt.Errorf("%s: failed on %q", fe.Namespace(), fe.Tag())
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether human-readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "dev" || c.Env == "test"
}
