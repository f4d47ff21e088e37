package main

import (
	"context"
	"log"

	"invoice-review-be/internal/bootstrap"
	"invoice-review-be/internal/config"
	"invoice-review-be/internal/server"
	"invoice-review-be/internal/tracer"
	"invoice-review-be/pkg/database"
)

func main() {
	// 0. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Pipeline Worker
	go func() {
		log.Println("Background: Starting Processing Service...")
		if err := container.ProcessingService.Consume(context.Background()); err != nil {
			log.Printf("Background Processing Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
