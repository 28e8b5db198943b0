package main

import (
	"log"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/medtransit/transport-backend-go/internal/api"
	"github.com/medtransit/transport-backend-go/internal/config"
	"github.com/medtransit/transport-backend-go/internal/database"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename: cfg.LogFile,
			MaxSize:  cfg.LogMaxSizeMB,
			MaxAge:   cfg.LogMaxAge,
			Compress: true,
		})
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}
	defer database.Close()

	db := database.GetDB()
	migrator := database.NewMigrationManager(db, cfg.MigrationsPath)
	if err := migrator.RunMigrations(); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	router := api.SetupRouter(cfg, db)

	log.Printf("server starting on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
