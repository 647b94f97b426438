package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"ALPACA_API_KEY", "ALPACA_SECRET_KEY", "ALPACA_TRADING_URL", "ALPACA_DATA_URL",
		"HTTP_ADDR", "LOG_LEVEL", "TELEGRAM_API_TOKEN", "TELEGRAM_CHAT_ID", "LOKI_ADDRESS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without env file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ALPACA_API_KEY", "key")
		t.Setenv("ALPACA_SECRET_KEY", "secret")

		cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)

		assert.Equal(t, defaultTradingURL, cfg.AlpacaTradingUrl)
		assert.Equal(t, defaultDataURL, cfg.AlpacaDataUrl)
		assert.Equal(t, defaultHTTPAddr, cfg.HTTPAddr)
		assert.False(t, cfg.TelegramEnabled())
	})

	t.Run("env file", func(t *testing.T) {
		clearEnv(t)
		for _, key := range []string{"ALPACA_API_KEY", "ALPACA_SECRET_KEY", "TELEGRAM_API_TOKEN", "TELEGRAM_CHAT_ID"} {
			require.NoError(t, os.Unsetenv(key))
		}

		file := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(file, []byte(
			"ALPACA_API_KEY=file-key\nALPACA_SECRET_KEY=file-secret\nTELEGRAM_API_TOKEN=token\nTELEGRAM_CHAT_ID=-100123\n",
		), 0o600))
		t.Cleanup(func() {
			for _, key := range []string{"ALPACA_API_KEY", "ALPACA_SECRET_KEY", "TELEGRAM_API_TOKEN", "TELEGRAM_CHAT_ID"} {
				_ = os.Unsetenv(key)
			}
		})

		cfg, err := loadConfig(file)
		require.NoError(t, err)

		assert.Equal(t, "file-key", cfg.AlpacaApiKey)
		assert.Equal(t, int64(-100123), cfg.TelegramChatID)
		assert.True(t, cfg.TelegramEnabled())
	})

	t.Run("missing credentials", func(t *testing.T) {
		clearEnv(t)

		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.ErrorIs(t, err, ErrEnvNotFound)
	})

	t.Run("bad chat id", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ALPACA_API_KEY", "key")
		t.Setenv("ALPACA_SECRET_KEY", "secret")
		t.Setenv("TELEGRAM_CHAT_ID", "general")

		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}
