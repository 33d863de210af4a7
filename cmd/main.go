package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/sea-battle/api"
	"github.com/saeidalz13/sea-battle/db"
	"github.com/saeidalz13/sea-battle/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	log.SetLevel(cfg.LogLevel)

	var psqlDb *sql.DB
	if cfg.DatabaseUrl != "" {
		psqlDb = db.MustConnectToDb(cfg.DatabaseUrl, db.DefaultMigrationDir)
		defer psqlDb.Close()
	} else {
		log.Warn("DATABASE_URL is empty; analytics disabled")
	}

	server := api.NewServer(
		api.WithPort(cfg.Port),
		api.WithStage(cfg.Stage),
		api.WithDb(psqlDb),
		api.WithSeed(cfg.Seed),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Error("server stopped", "err", err)
	}
}
