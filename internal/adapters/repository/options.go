package repository

import "time"

// Collection defaults match the names already used by existing deployments.
const (
	DefaultPlayersCollection = "Player_per"
	DefaultMatchesCollection = "matches"

	defaultConnectTimeout = 10 * time.Second
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithPlayersCollection overrides the player collection name.
func WithPlayersCollection(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.playersCollection = name
		}
	}
}

// WithMatchesCollection overrides the match collection name.
func WithMatchesCollection(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.matchesCollection = name
		}
	}
}

// WithConnectTimeout bounds Connect.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.connectTimeout = d
		}
	}
}
