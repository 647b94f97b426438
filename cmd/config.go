package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultTradingURL = "https://paper-api.alpaca.markets"
	defaultDataURL    = "https://data.alpaca.markets"
	defaultHTTPAddr   = ":8000"
)

// Config is read once at start up and passed by value afterwards.
type Config struct {
	AlpacaApiKey     string
	AlpacaSecretKey  string
	AlpacaTradingUrl string
	AlpacaDataUrl    string

	HTTPAddr string
	LogLevel string

	TelegramApiToken string
	TelegramChatID   int64

	LokiAddress string
}

var ErrEnvNotFound = errors.New("err env not found")

// loadConfig reads confFileName when it exists; the process environment
// always wins over the file.
func loadConfig(confFileName string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(confFileName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	var err error

	if cfg.AlpacaApiKey, err = required("ALPACA_API_KEY"); err != nil {
		return cfg, err
	}

	if cfg.AlpacaSecretKey, err = required("ALPACA_SECRET_KEY"); err != nil {
		return cfg, err
	}

	cfg.AlpacaTradingUrl = optional("ALPACA_TRADING_URL", defaultTradingURL)
	cfg.AlpacaDataUrl = optional("ALPACA_DATA_URL", defaultDataURL)
	cfg.HTTPAddr = optional("HTTP_ADDR", defaultHTTPAddr)
	cfg.LogLevel = optional("LOG_LEVEL", "INFO")
	cfg.LokiAddress = optional("LOKI_ADDRESS", "")

	cfg.TelegramApiToken = optional("TELEGRAM_API_TOKEN", "")
	if chatID := optional("TELEGRAM_CHAT_ID", ""); chatID != "" {
		if cfg.TelegramChatID, err = strconv.ParseInt(chatID, 10, 64); err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
	}

	return cfg, nil
}

func (c Config) TelegramEnabled() bool {
	return c.TelegramApiToken != "" && c.TelegramChatID != 0
}

func required(key string) (string, error) {
	if os.Getenv(key) == "" {
		return "", fmt.Errorf("%s: %w", key, ErrEnvNotFound)
	}

	return os.Getenv(key), nil
}

func optional(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
