// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and the environment on top.
// - Functions accept context.Context as the first parameter.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":3002".
	Addr string `koanf:"addr"`

	// MongoURI is the document store connection string.
	MongoURI string `koanf:"mongo_uri"`

	// MongoDatabase names the database holding both collections.
	MongoDatabase string `koanf:"mongo_database"`

	// PlayersCollection and MatchesCollection name the two collections.
	PlayersCollection string `koanf:"players_collection"`
	MatchesCollection string `koanf:"matches_collection"`

	// ConnectTimeoutMS bounds the startup connect and ping.
	ConnectTimeoutMS int `koanf:"connect_timeout_ms"`

	// CORSAllowedOrigins lists origins allowed to call the API from a browser.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// StaticDir is served at / when it exists.
	StaticDir string `koanf:"static_dir"`
}

// New creates a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":3002",
		MongoURI:           "mongodb://127.0.0.1:27017",
		MongoDatabase:      "Player_performance",
		PlayersCollection:  "Player_per",
		MatchesCollection:  "matches",
		ConnectTimeoutMS:   10_000,
		CORSAllowedOrigins: []string{"http://localhost:3001"},
		StaticDir:          "public",
	}
}

// ConnectTimeout returns ConnectTimeoutMS as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutMS) * time.Millisecond
}
