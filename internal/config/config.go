// Package config loads client settings from a TOML file and login
// credentials from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/hl-client/internal/auth"
	"github.com/insightdelivered/hl-client/internal/client"
	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/transport"
)

// DefaultFile is read when no config path is given. It may be absent.
const DefaultFile = "hl-client.toml"

// Environment variables holding the login credentials.
const (
	EnvUsername     = "HL_USERNAME"
	EnvPassword     = "HL_PASSWORD"
	EnvBirthday     = "HL_BIRTHDAY"
	EnvSecurityCode = "HL_SECURITY_CODE"
)

// Config holds the client settings.
type Config struct {
	BaseURL         string
	UserAgent       string
	Timeout         time.Duration
	RateLimit       int // requests per second
	MessageCacheTTL time.Duration
	ValueFallback   decimal.Decimal
	LogLevel        string
	Listen          string
}

// Default returns the settings used when no file overrides them.
func Default() *Config {
	return &Config{
		BaseURL:         transport.DefaultBaseURL,
		UserAgent:       transport.DefaultUserAgent,
		Timeout:         transport.DefaultTimeout,
		RateLimit:       transport.DefaultRateLimit,
		MessageCacheTTL: client.DefaultMessageCacheTTL,
		ValueFallback:   decimal.Zero,
		LogLevel:        "info",
		Listen:          ":8080",
	}
}

// Load reads settings from path on top of the defaults. An empty path
// reads DefaultFile if it exists.
//
//	[client]
//	base_url = "https://online.hl.co.uk/"
//	timeout = "30s"
//	rate_limit = 2
//	message_cache_ttl = "1h"
//	value_fallback = "0"
//
//	[log]
//	level = "debug"
//
//	[api]
//	listen = ":8080"
func Load(path string) (*Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		path = DefaultFile
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if k.Exists("client.base_url") {
		cfg.BaseURL = k.String("client.base_url")
	}
	if k.Exists("client.user_agent") {
		cfg.UserAgent = k.String("client.user_agent")
	}
	if k.Exists("client.timeout") {
		cfg.Timeout = k.Duration("client.timeout")
	}
	if k.Exists("client.rate_limit") {
		cfg.RateLimit = k.Int("client.rate_limit")
	}
	if k.Exists("client.message_cache_ttl") {
		cfg.MessageCacheTTL = k.Duration("client.message_cache_ttl")
	}
	if k.Exists("client.value_fallback") {
		d, err := decimal.NewFromString(k.String("client.value_fallback"))
		if err != nil {
			return nil, fmt.Errorf("invalid client.value_fallback: %w", err)
		}
		cfg.ValueFallback = d
	}
	if k.Exists("log.level") {
		cfg.LogLevel = k.String("log.level")
	}
	if k.Exists("api.listen") {
		cfg.Listen = k.String("api.listen")
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("invalid client.timeout %v: must be positive", cfg.Timeout)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("invalid client.rate_limit %d: must not be negative", cfg.RateLimit)
	}
	return cfg, nil
}

// Credentials reads the login credentials from the environment, after
// loading any of the given .env files that exist. Variables already set
// in the environment win over the files.
func Credentials(envFiles ...string) (auth.Credentials, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return auth.Credentials{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	creds := auth.Credentials{
		Username:     os.Getenv(EnvUsername),
		Password:     os.Getenv(EnvPassword),
		SecureNumber: strings.TrimSpace(os.Getenv(EnvSecurityCode)),
	}

	if raw := strings.TrimSpace(os.Getenv(EnvBirthday)); raw != "" {
		dob, err := parseBirthday(raw)
		if err != nil {
			return auth.Credentials{}, fmt.Errorf("invalid %s: %w", EnvBirthday, err)
		}
		creds.DateOfBirth = dob
	}

	if err := creds.Validate(); err != nil {
		return auth.Credentials{}, err
	}
	return creds, nil
}

// parseBirthday accepts ISO dates as well as the site's day-first dates.
func parseBirthday(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, raw, time.UTC); err == nil {
		return t, nil
	}
	return locale.ParseDate(raw)
}
