package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" env-default:"8080"`
	SwaggerHost string `env:"SWAGGER_HOST"`

	DBDriver       string `env:"DB_DRIVER" env-default:"mysql"`
	DatabaseDSN    string `env:"DATABASE_DSN" env-default:"user:password@tcp(localhost:3306)/chakula?charset=utf8mb4&parseTime=True&loc=Local"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"20"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ResetDB        bool   `env:"RESET_DB" env-default:"false"`

	RedisAddr string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisDB   int           `env:"REDIS_DB" env-default:"0"`
	RedisPass string        `env:"REDIS_PASSWORD"`
	CacheTTL  time.Duration `env:"CACHE_TTL" env-default:"5m"`

	JWTSecret       string        `env:"JWT_SECRET" env-default:"change-me"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"24h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" env-default:"168h"`
	PasswordHasher  string        `env:"PASSWORD_HASHER" env-default:"bcrypt"`

	Root RootUser
}

// RootUser describes the ADMIN account created on first start.
type RootUser struct {
	Email    string `env:"ROOT_EMAIL" env-default:"root@smartchakula.local"`
	Password string `env:"ROOT_PASSWORD" env-default:"ChangeMe@2024"`
	FullName string `env:"ROOT_FULL_NAME" env-default:"System Administrator"`
	Phone    string `env:"ROOT_PHONE" env-default:"0700000000"`
}

// Load builds Config from the environment, applying defaults for unset keys.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for entry points that cannot continue without config.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
