package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyComet55/atm-tg-bot/internal/config"
)

func TestLoadWith_Defaults(t *testing.T) {
	c, err := config.LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, config.EnvDev, c.Env)
	assert.Equal(t, config.FrontendTerminal, c.Frontend)
	assert.Equal(t, uint64(1000), c.Cash)
	assert.Equal(t, 2*time.Minute, c.IdleTimeout)
	assert.Empty(t, c.AuthorizedUsers)
}

func TestLoadWith_Telegram(t *testing.T) {
	c, err := config.LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                 "prod",
		"FRONTEND":            "telegram",
		"ATM_CASH":            "250",
		"ATM_IDLE_TIMEOUT":    "30s",
		"BOT_TOKEN":           "token",
		"AUTHORIZED_USER_IDS": "10,20",
	}))
	require.NoError(t, err)

	assert.Equal(t, config.EnvProd, c.Env)
	assert.Equal(t, uint64(250), c.Cash)
	assert.Equal(t, 30*time.Second, c.IdleTimeout)
	assert.Equal(t, "token", c.BotApiKey)
	assert.Equal(t, []int64{10, 20}, c.AuthorizedUsers)
}

func TestLoadWith_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown env", map[string]string{"ENV": "staging"}},
		{"unknown frontend", map[string]string{"FRONTEND": "web"}},
		{"telegram without token", map[string]string{"FRONTEND": "telegram", "AUTHORIZED_USER_IDS": "1"}},
		{"telegram without users", map[string]string{"FRONTEND": "telegram", "BOT_TOKEN": "token"}},
		{"negative timeout", map[string]string{"ATM_IDLE_TIMEOUT": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	t.Run("malformed cash", func(t *testing.T) {
		_, err := config.LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{"ATM_CASH": "-5"}))
		assert.Error(t, err)
	})
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ATM_TEST_DOTENV_CASH=77\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ATM_TEST_DOTENV_CASH") })

	require.NoError(t, config.LoadDotenv(path))
	assert.Equal(t, "77", os.Getenv("ATM_TEST_DOTENV_CASH"))

	assert.Error(t, config.LoadDotenv(filepath.Join(t.TempDir(), "missing.env")))
}
