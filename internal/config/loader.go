package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SQUADBOOK_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if SQUADBOOK_CONFIG is set
//  3. env (prefix SQUADBOOK_)
//
// A .env file in the working directory, when present, is loaded into the
// process environment first. Variables already set win over the file.
// The bare PORT variable sets addr when neither the file nor the
// environment set it.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %w", ErrLoadConfig, err)
	}

	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SQUADBOOK_MONGO_URI -> mongo_uri. Underscores are preserved to match
	// the koanf tags; list values are comma separated.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if key == "cors_allowed_origins" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	if !k.Exists("addr") {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			if err := k.Set("addr", ":"+port); err != nil {
				return nil, fmt.Errorf("%w: PORT: %w", ErrLoadConfig, err)
			}
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.MongoURI) == "":
		return fmt.Errorf("%w: mongo_uri must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.MongoDatabase) == "":
		return fmt.Errorf("%w: mongo_database must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.PlayersCollection) == "":
		return fmt.Errorf("%w: players_collection must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.MatchesCollection) == "":
		return fmt.Errorf("%w: matches_collection must not be empty", ErrInvalidConfig)
	case c.ConnectTimeoutMS <= 0:
		return fmt.Errorf("%w: connect_timeout_ms must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
