package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"community-bot/bot"
	"community-bot/config"
	"community-bot/handlers"
	"community-bot/server"
	"community-bot/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := bot.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("error opening record stores", zap.Error(err))
	}

	b, err := bot.New(cfg, stores, logger)
	if err != nil {
		_ = stores.Close()
		logger.Fatal("error creating bot", zap.Error(err))
	}
	defer b.Close()

	handlers.Register(b)

	srv := server.New(server.Options{
		Port:      cfg.Port,
		Logger:    logger,
		Stores:    stores,
		Session:   b.Session,
		StartedAt: b.StartedAt,
	})
	srv.Start()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Warn("http server shutdown", zap.Error(err))
		}
	}()

	if err := b.Run(ctx); err != nil {
		logger.Error("bot stopped", zap.Error(err))
	}
}
