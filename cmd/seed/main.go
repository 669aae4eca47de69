package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/squadbook/internal/adapters/repository"
	"github.com/okian/squadbook/internal/config"
	"github.com/okian/squadbook/internal/seed"
	"github.com/okian/squadbook/pkg/logger"
)

const defaultSeedTimeout = 5 * time.Minute

func main() {
	var (
		file    = flag.String("file", "players.csv", "CSV file with one player per row and a header of field names")
		drop    = flag.Bool("drop", false, "Delete existing players before inserting")
		timeout = flag.Duration("timeout", defaultSeedTimeout, "Overall time limit")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString(cfg.LogLevel)
	log := logger.Named("seed")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal(ctx, "failed to open input", logger.String("file", *file), logger.Error(err))
		return
	}
	defer f.Close()

	store, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase,
		repository.WithPlayersCollection(cfg.PlayersCollection),
		repository.WithConnectTimeout(cfg.ConnectTimeout()),
	)
	if err != nil {
		log.Fatal(ctx, "failed to connect to store", logger.Error(err))
		return
	}
	defer func() {
		_ = store.Close(context.Background())
	}()

	stats, err := seed.Run(ctx, store.Players(), f, seed.Config{Source: *file, Drop: *drop})
	if err != nil {
		log.Error(ctx, "seeding failed", logger.Error(err))
		_ = store.Close(context.Background())
		os.Exit(1)
	}

	log.Info(ctx, "players seeded",
		logger.String("collection", cfg.PlayersCollection),
		logger.Int("inserted", stats.Inserted),
		logger.Any("deleted", stats.Deleted))
}
