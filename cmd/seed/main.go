package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/dsmovie/internal/config"
	"github.com/Clark-Hu/dsmovie/internal/logging"
	"github.com/Clark-Hu/dsmovie/internal/repository"
	"github.com/Clark-Hu/dsmovie/internal/seed"
	"github.com/Clark-Hu/dsmovie/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	logger := logging.New(cfg.AppName, cfg.Env, cfg.IsDevelopment())

	if err := store.Migrate(cfg.DBURL, cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migrate database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.New(ctx, cfg.DBURL, store.Options{Logger: logger, StatementCacheCapacity: cfg.DBStatementCache})
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	defer st.Close()

	if err := seed.Run(ctx, repository.New(st), logger); err != nil {
		logger.WithError(err).Fatal("seed database")
	}
	logger.Info("seed completed")
}
