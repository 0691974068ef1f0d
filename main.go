package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arnold/activities-api/internal/config"
	"github.com/arnold/activities-api/internal/database"
	"github.com/arnold/activities-api/internal/logger"
	"github.com/arnold/activities-api/internal/routes"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.Default()

	if err := database.Connect(cfg); err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}
	if err := database.SeedSuperuser(cfg.FirstSuperuser, cfg.FirstSuperuserPassword); err != nil {
		log.WithError(err).Fatal("failed to seed first superuser")
	}

	app := routes.NewApp(cfg, database.DB)

	go func() {
		log.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"environment": cfg.Environment,
		}).Info("starting HTTP server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if err := database.Close(); err != nil {
		log.WithError(err).Error("failed to close database")
	}
}
