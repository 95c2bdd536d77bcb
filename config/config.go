package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment. Defaults target local development;
// TOKEN_SECRET must be overridden in any real deployment.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	MongoURI        string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB         string        `env:"MONGO_DB" envDefault:"resourcedb"`
	TokenSecret     string        `env:"TOKEN_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	NATSURL         string        `env:"NATS_URL"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	EnableBootstrap bool          `env:"ENABLE_BOOTSTRAP"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
