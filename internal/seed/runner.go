package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/okian/squadbook/internal/domain/model"
	"github.com/okian/squadbook/pkg/logger"
	"github.com/okian/squadbook/pkg/metrics"
)

// Store is the write side of the player store used for seeding.
type Store interface {
	InsertPlayers(ctx context.Context, players []model.Player) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Config holds seeding options.
type Config struct {
	Source string // Name of the input, for logging
	Drop   bool   // Delete existing players before inserting
}

// Stats summarises a seeding run.
type Stats struct {
	Parsed   int
	Deleted  int64
	Inserted int
	Active   int
	Duration time.Duration
}

// Run parses players from r and writes them to store. Parsing completes
// before anything is deleted, so a malformed file leaves the store intact.
func Run(ctx context.Context, store Store, r io.Reader, cfg Config) (Stats, error) {
	start := time.Now()
	log := logger.Named("seed")

	players, err := ParsePlayers(r)
	if err != nil {
		return Stats{}, fmt.Errorf("parse %s: %w", cfg.Source, err)
	}
	stats := Stats{Parsed: len(players)}
	for _, p := range players {
		if p.IsActive() {
			stats.Active++
		}
	}

	log.Info(ctx, "parsed players",
		logger.String("source", cfg.Source),
		logger.Int("players", stats.Parsed),
		logger.Int("active", stats.Active))

	if cfg.Drop {
		deleted, err := store.DeleteAll(ctx)
		if err != nil {
			return stats, fmt.Errorf("drop players: %w", err)
		}
		stats.Deleted = deleted
		log.Info(ctx, "dropped existing players", logger.Any("deleted", deleted))
	}

	if len(players) > 0 {
		inserted, err := store.InsertPlayers(ctx, players)
		if err != nil {
			return stats, fmt.Errorf("insert players: %w", err)
		}
		stats.Inserted = inserted
		metrics.RecordPlayersSeeded(inserted)
	}

	stats.Duration = time.Since(start)
	log.Info(ctx, "seeding complete",
		logger.Int("inserted", stats.Inserted),
		logger.String("duration", stats.Duration.String()))
	return stats, nil
}
