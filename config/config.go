// Package config reads client settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"finaily/client"
	"finaily/search"
	"finaily/types"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvAPIURL        = "FINAILY_API_URL"
	EnvLegacyAPIURL  = "NEXT_PUBLIC_API_URL"
	EnvTimeout       = "FINAILY_TIMEOUT"
	EnvLang          = "FINAILY_LANG"
	EnvLimit         = "FINAILY_LIMIT"
	EnvDebounce      = "FINAILY_DEBOUNCE"
	EnvToken         = "FINAILY_TOKEN"
	EnvTokenFile     = "FINAILY_TOKEN_FILE"
	EnvRedisAddr     = "FINAILY_REDIS_ADDR"
	EnvRedisPassword = "FINAILY_REDIS_PASSWORD"
	EnvRedisDB       = "FINAILY_REDIS_DB"
	EnvCacheTTL      = "FINAILY_CACHE_TTL"
	EnvLogFile       = "FINAILY_LOG_FILE"
	EnvLogLevel      = "FINAILY_LOG_LEVEL"
)

const DefaultCacheTTL = 60 * time.Second

// Config holds everything the client needs at startup
type Config struct {
	APIURL   string
	Timeout  time.Duration
	Lang     types.Language
	Limit    int
	Debounce time.Duration

	Token     string
	TokenFile string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	LogFile  string
	LogLevel slog.Level
}

// Load reads .env when present, then the environment
func Load(files ...string) (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(files...)
	return FromEnv()
}

// FromEnv builds a Config from environment variables alone
func FromEnv() (Config, error) {
	cfg := Config{
		APIURL:        GetEnvOrDefault(EnvAPIURL, GetEnvOrDefault(EnvLegacyAPIURL, client.DefaultBaseURL)),
		Lang:          types.Language(strings.ToLower(GetEnvOrDefault(EnvLang, string(types.DefaultLanguage)))),
		Token:         os.Getenv(EnvToken),
		TokenFile:     os.Getenv(EnvTokenFile),
		RedisAddr:     os.Getenv(EnvRedisAddr),
		RedisPassword: os.Getenv(EnvRedisPassword),
		LogFile:       GetEnvOrDefault(EnvLogFile, filepath.Join(os.TempDir(), "finaily.log")),
	}

	if !cfg.Lang.Valid() {
		return Config{}, fmt.Errorf("%s: unsupported language %q", EnvLang, cfg.Lang)
	}

	var err error
	if cfg.Timeout, err = duration(EnvTimeout, client.DefaultTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("%s: must be positive", EnvTimeout)
	}
	if cfg.Debounce, err = duration(EnvDebounce, search.DefaultDebounce); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = duration(EnvCacheTTL, DefaultCacheTTL); err != nil {
		return Config{}, err
	}

	if cfg.Limit, err = integer(EnvLimit, client.DefaultLimit); err != nil {
		return Config{}, err
	}
	if cfg.Limit < 1 || cfg.Limit > client.MaxLimit {
		return Config{}, fmt.Errorf("%s: must be between 1 and %d, got %d", EnvLimit, client.MaxLimit, cfg.Limit)
	}
	if cfg.RedisDB, err = integer(EnvRedisDB, 0); err != nil {
		return Config{}, err
	}

	if cfg.LogLevel, err = level(GetEnvOrDefault(EnvLogLevel, "info")); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CacheEnabled reports whether responses should be cached at all
func (c Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func duration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

func integer(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func level(raw string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	return l, nil
}
