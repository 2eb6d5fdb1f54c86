// Command admin runs maintenance tasks against the MySQL store. It is not reachable over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	dbadapter "flock/internal/adapters/database"
	"flock/internal/config"
	followerapp "flock/internal/core/follower/service"

	"go.uber.org/zap"
)

func main() {
	resetFollows := flag.Bool("reset-follows", false, "delete every follow edge")
	confirm := flag.Bool("confirm", false, "required for destructive tasks")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !*resetFollows {
		flag.Usage()
		os.Exit(2)
	}
	if !*confirm {
		logger.Fatal("refusing to reset follows without -confirm")
	}

	db, err := config.OpenMySQL(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("Error connecting to the database", zap.Error(err))
	}
	defer func() { _ = config.CloseDB(db) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := followerapp.NewFollowerService(
		dbadapter.NewFollowerRepositoryDatabase(db),
		dbadapter.NewUserRepositoryDatabase(db),
		dbadapter.NewActivityRepositoryDatabase(db),
		logger,
	)
	n, err := svc.ResetAll(ctx)
	if err != nil {
		logger.Fatal("reset follows failed", zap.Error(err))
	}
	logger.Info("follow edges removed", zap.Int64("count", n))
}
