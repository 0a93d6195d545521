package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	UserTokenTTL  time.Duration `env:"USER_TOKEN_TTL,  default=720h"`
	AdminTokenTTL time.Duration `env:"ADMIN_TOKEN_TTL, default=168h"`

	Mongo MongoConfig
	Redis RedisConfig
	Demo  DemoConfig
	Admin AdminSeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=account_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// DemoConfig configures the guide-mode login bypass. Leaving either value
// empty disables it.
type DemoConfig struct {
	Identifier string `env:"DEMO_IDENTIFIER, default=0000000000"`
	Password   string `env:"DEMO_PASSWORD,   default=demo123"`
}

// AdminSeedConfig seeds a super admin on first start when both values are
// set and no admin exists yet.
type AdminSeedConfig struct {
	Phone    string `env:"ADMIN_PHONE"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
