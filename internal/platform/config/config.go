// Package config loads application configuration from the environment so
// main stays lean.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Deployment environments. Production resolves the store connection string
// from AWS Secrets Manager; test skips the connection entirely and runs on
// the in-memory store.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Mongo  MongoConfig  `yaml:"mongo"`
	Log    LogConfig    `yaml:"log"`

	// Env selects the deployment environment.
	Env string `yaml:"env" env:"APP_ENV" env-default:"development"`

	// AWSRegion is required in production; it selects the Secrets Manager
	// region and is reported in the readiness registry.
	AWSRegion string `yaml:"aws_region" env:"AWS_REGION"`

	// MockSecrets swaps the Secrets Manager provider for a canned fake.
	// Pre-production smoke testing only.
	MockSecrets bool `yaml:"mock_secrets" env:"MOCK_SECRETS" env-default:"false"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// MongoConfig holds document store settings. URI is the development
// fallback; production builds the URI from the resolved secret.
type MongoConfig struct {
	URI            string        `yaml:"uri"             env:"MONGO_URI"             env-default:"mongodb://127.0.0.1:27017/test"`
	Database       string        `yaml:"database"        env:"MONGO_DATABASE"        env-default:"test"`
	Collection     string        `yaml:"collection"      env:"MONGO_COLLECTION"      env-default:"RiskCategory"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}
