package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr           string        `env:"LISTEN_ADDR"            envDefault:":8501"`
	OpenRouterAPIKey     string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL    string        `env:"OPENROUTER_BASE_URL"    envDefault:"https://openrouter.ai/api/v1"`
	Model                string        `env:"MODEL"                  envDefault:"stepfun/step-3.5-flash:free"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT"        envDefault:"30s"`
	DBPath               string        `env:"DB_PATH"                envDefault:"db.sqlite"`
	HistoryRetentionDays int64         `env:"HISTORY_RETENTION_DAYS" envDefault:"30"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
