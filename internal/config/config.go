package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"PharmaCare"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		Driver string `envconfig:"STORAGE_DRIVER" default:"file"`
		Path   string `envconfig:"STORAGE_PATH" default:"./data/pharmacare.json"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pharmacare"`
	}

	Redis struct {
		Addr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
		Password  string `envconfig:"REDIS_PASSWORD" default:""`
		DB        int    `envconfig:"REDIS_DB" default:"0"`
		KeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"pharmacare:"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Checkout struct {
		RequireCustomer bool `envconfig:"CHECKOUT_REQUIRE_CUSTOMER" default:"false"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" default:"change-me"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"5m"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Storage.Driver {
	case DriverMemory, DriverFile, DriverPostgres, DriverRedis:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return &cfg, nil
}
