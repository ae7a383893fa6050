package main

import (
	"log"

	"campus-quiz/internal/config"
	"campus-quiz/internal/database"
	"campus-quiz/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.NewSQLXSQLiteDB(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, "database/migrations"); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
