package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// BaseURL is the public origin used for links in outbound emails.
	BaseURL string `env:"BASE_URL, default=http://localhost:8080"`

	// AllowStaticFallback enables serving the static catalog dataset on
	// persistence failure for public reads. Forced off in production.
	AllowStaticFallback bool `env:"ALLOW_STATIC_FALLBACK, default=true"`

	// RequireEmailVerification blocks login for unverified accounts.
	RequireEmailVerification bool `env:"REQUIRE_EMAIL_VERIFICATION, default=false"`

	// SeedSecret protects the seed CLI's destructive admin-repair path.
	SeedSecret string `env:"SEED_SECRET, default=seed-2024"`

	Mongo MongoConfig
	Redis RedisConfig
	Email EmailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=opendev_site"`
}

type RedisConfig struct {
	// Addr is optional; when empty the in-process rate-limiter store is used.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type EmailConfig struct {
	// SendGridAPIKey is optional; when empty notifications are logged locally
	// and reported as skipped.
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	FromEmail      string `env:"SENDGRID_FROM_EMAIL, default=noreply@opendev.com"`
	// AdminEmail receives order and contact notifications when the site
	// content footer has no address configured.
	AdminEmail string `env:"ADMIN_EMAIL"`
}

// IsProduction reports whether the process runs with a production flag.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
