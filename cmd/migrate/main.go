package main

import (
	"log"

	"invoice-review-be/internal/config"
	"invoice-review-be/internal/model"
	"invoice-review-be/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Document{},
		&model.Chunk{},
	); err != nil {
		log.Panicf("Migration failed: %v", err)
	}

	log.Println("✅ Migration complete")
}
