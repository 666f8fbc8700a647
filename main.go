// @title Bootcamp LMS API
// @version 1.0
// @description Backend for the bootcamp learning platform: course content,
// @description progress tracking, project submissions and the study assistant.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"bootcamp_lms_backend/internal/app"
	"bootcamp_lms_backend/internal/config"
	"bootcamp_lms_backend/pkg/configwatcher"
	"bootcamp_lms_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on startup even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
