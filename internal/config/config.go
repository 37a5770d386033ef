package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
}

type ServerConfig struct {
	Port           string        `envconfig:"SERVER_PORT" default:"5173"`
	Host           string        `envconfig:"SERVER_HOST" default:"127.0.0.1"`
	ReadTimeout    time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout   time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
	WebDir         string        `envconfig:"WEB_DIR" default:"web"`
	AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`
}

type BackendConfig struct {
	BaseURL string `envconfig:"BACKEND_URL" default:"http://127.0.0.1:8000"`

	// Zero means no client-side timeout: a hung backend request is
	// surfaced by the UI staying in its loading state, not by an error.
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"0"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
