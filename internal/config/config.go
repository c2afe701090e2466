package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	dotenv "github.com/joho/godotenv"
	envconf "github.com/sethvargo/go-envconfig"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	FrontendTerminal = "terminal"
	FrontendTelegram = "telegram"
)

var ErrInvalidConfig = errors.New("invalid config")

type AppConfig struct {
	Env             string        `env:"ENV, default=dev"`
	Frontend        string        `env:"FRONTEND, default=terminal"`
	Cash            uint64        `env:"ATM_CASH, default=1000"`
	IdleTimeout     time.Duration `env:"ATM_IDLE_TIMEOUT, default=2m"`
	BotApiKey       string        `env:"BOT_TOKEN"`
	AuthorizedUsers []int64       `env:"AUTHORIZED_USER_IDS"`
}

// LoadDotenv reads .env files into the process environment. A missing file is reported
// but is not fatal.
func LoadDotenv(filenames ...string) error {
	if err := dotenv.Load(filenames...); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads the config from the process environment.
func Load(ctx context.Context) (AppConfig, error) {
	return LoadWith(ctx, envconf.OsLookuper())
}

func LoadWith(ctx context.Context, lookuper envconf.Lookuper) (AppConfig, error) {
	var c AppConfig
	if err := envconf.ProcessWith(ctx, &envconf.Config{
		Target:   &c,
		Lookuper: lookuper,
	}); err != nil {
		return AppConfig{}, fmt.Errorf("process env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

func (c AppConfig) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd:
	default:
		return fmt.Errorf("%w: incorrect env type: %s. possible values: dev, prod", ErrInvalidConfig, c.Env)
	}

	if c.IdleTimeout < 0 {
		return fmt.Errorf("%w: ATM_IDLE_TIMEOUT must not be negative", ErrInvalidConfig)
	}

	switch c.Frontend {
	case FrontendTerminal:
	case FrontendTelegram:
		if c.BotApiKey == "" {
			return fmt.Errorf("%w: BOT_TOKEN is required for the telegram frontend", ErrInvalidConfig)
		}
		if len(c.AuthorizedUsers) == 0 {
			return fmt.Errorf("%w: AUTHORIZED_USER_IDS is required for the telegram frontend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: incorrect frontend: %s. possible values: terminal, telegram", ErrInvalidConfig, c.Frontend)
	}

	return nil
}
