package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Port int `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host           string `envconfig:"DB_HOST" default:"localhost"`
		Port           uint   `envconfig:"DB_PORT" default:"5432"`
		Name           string `envconfig:"DB_NAME" default:"imovel"`
		User           string `envconfig:"DB_USERNAME"`
		Password       string `envconfig:"DB_PASSWORD"`
		SecretID       string `envconfig:"DB_SECRET_ID"`
		SSLModeDisable bool   `envconfig:"DB_SSL_MODE_DISABLE" default:"true"`
	}

	Uploads struct {
		Dir string `envconfig:"UPLOADS_DIR" default:"uploads"`
	}

	// SeedDemo carrega os dados de demonstração na subida.
	SeedDemo bool `envconfig:"SEED_DEMO" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
