// Package repository implements the player and match stores on MongoDB.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/okian/squadbook/pkg/metrics"
)

// Client owns the process-wide connection to the document store. It is
// created once at startup and handed to the stores that need it.
type Client struct {
	client            *mongo.Client
	db                *mongo.Database
	playersCollection string
	matchesCollection string
	connectTimeout    time.Duration
}

// Connect dials uri, verifies the deployment answers a ping and selects
// database. The connect timeout bounds both steps.
func Connect(ctx context.Context, uri, database string, opts ...Option) (*Client, error) {
	c := &Client{
		playersCollection: DefaultPlayersCollection,
		matchesCollection: DefaultMatchesCollection,
		connectTimeout:    defaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping: %w", ErrConnect, err)
	}

	c.client = mc
	c.db = mc.Database(database)
	return c, nil
}

// Ping checks the deployment is reachable.
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	err := c.client.Ping(ctx, readpref.Primary())
	observe("ping", start, err)
	return err
}

// Close disconnects from the deployment.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Players returns the player store backed by this connection.
func (c *Client) Players() *PlayerStore {
	return NewPlayerStore(c.db.Collection(c.playersCollection))
}

// Matches returns the match store backed by this connection.
func (c *Client) Matches() *MatchStore {
	return NewMatchStore(c.db.Collection(c.matchesCollection))
}

func observe(op string, start time.Time, err error) {
	ms := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordStoreOperation(op, ms, err)
}

// track is deferred with a pointer to the named error result so the final
// value is observed.
func track(op string, start time.Time, errp *error) {
	observe(op, start, *errp)
}
