package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultApiBaseUrl = "http://localhost:5001/api"
	DefaultPort       = 3009

	MarketSourceBackend = "backend"
	MarketSourceYahoo   = "yahoo"
)

type Config struct {
	ApiBaseUrl       string `json:"apiBaseUrl"`
	ApiKey           string `json:"apiKey"`
	Port             int    `json:"port"`
	MarketDataSource string `json:"marketDataSource"`
	TimeoutSeconds   int    `json:"timeoutSeconds"`
}

func defaultConfig() Config {
	return Config{
		ApiBaseUrl:       DefaultApiBaseUrl,
		Port:             DefaultPort,
		MarketDataSource: MarketSourceBackend,
		TimeoutSeconds:   120,
	}
}

func configFile() string {
	switch strings.ToLower(os.Getenv("STRATEGY_ENV")) {
	case "dev":
		return "config-dev.json"
	case "test":
		return "config-test.json"
	}
	return "config.json"
}

// LoadConfig layers defaults, the env-specific JSON file and finally
// STRATEGY_* environment variables (a local .env is loaded first if present).
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaultConfig()

	f, err := os.ReadFile(configFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not open %s: %w", configFile(), err)
	}
	if err == nil {
		if err := json.Unmarshal(f, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configFile(), err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("STRATEGY_API_BASE_URL"); v != "" {
		cfg.ApiBaseUrl = v
	}
	if v := os.Getenv("STRATEGY_API_KEY"); v != "" {
		cfg.ApiKey = v
	}
	if v := os.Getenv("STRATEGY_MARKET_SOURCE"); v != "" {
		cfg.MarketDataSource = strings.ToLower(v)
	}
	if v := os.Getenv("STRATEGY_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid STRATEGY_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	cfg.ApiBaseUrl = strings.TrimRight(cfg.ApiBaseUrl, "/")
	return nil
}
