package main

import (
	"context"
	"errors"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/internal/repository"
	"github.com/klasstra/klasstra-api/internal/service"
	"github.com/klasstra/klasstra-api/pkg/config"
	"github.com/klasstra/klasstra-api/pkg/database"
	"github.com/klasstra/klasstra-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	if err := database.SetupGoose(logr); err != nil {
		logr.Fatal("goose setup failed", zap.Error(err))
	}

	cli := &commandLine{
		db:     db.DB,
		users:  service.NewUserService(repository.NewUserRepository(db), nil, logr),
		seed:   cfg.Seed,
		logger: logr,
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		logr.Fatal("command failed", zap.Error(err))
	}
}
