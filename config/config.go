// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting. All values come from environment
// variables; defaults suit local development only.
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"local"`
	Port    string `envconfig:"PORT" default:"8080"`
	MongoDB string `envconfig:"MONGO_DB" default:"glowmart"`

	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`

	// AdminPass may be either the plain password or a bcrypt hash of it
	// (recognised by the "$2" prefix).
	AdminUser string `envconfig:"ADMIN_USER" default:"admin"`
	AdminPass string `envconfig:"ADMIN_PASS" required:"true"`

	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpires time.Duration `envconfig:"JWT_EXPIRES_IN" default:"168h"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// RateLimit is the per-IP request ceiling over RateWindow.
	RateLimit  int           `envconfig:"RATE_LIMIT" default:"300"`
	RateWindow time.Duration `envconfig:"RATE_WINDOW" default:"15m"`

	// RedisAddr enables the product list cache when non-empty.
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"60s"`

	// LogMongoCollection enables the async Mongo log sink when non-empty.
	LogMongoCollection string `envconfig:"LOG_MONGO_COLLECTION"`
}

// Load reads the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET must not be blank")
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 300
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production settings.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}
