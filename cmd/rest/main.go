package main

import (
	"context"
	"log"

	"groupchat-be/internal/bootstrap"
	"groupchat-be/internal/config"
	"groupchat-be/internal/server"
	"groupchat-be/internal/tracer"
	"groupchat-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
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

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Retention Worker...")
		if err := container.RetentionService.Consume(context.Background()); err != nil {
			log.Printf("Background Retention Error: %v", err)
		}
	}()
	container.RetentionService.StartTicker(context.Background(), cfg.Chat.RetentionDays, cfg.Chat.RetentionSweepHours)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
