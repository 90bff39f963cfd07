package main

import (
	"context"
	"log"

	"github.com/cleanaz-dev/hueline-sub000/internal/bootstrap"
	"github.com/cleanaz-dev/hueline-sub000/internal/config"
	"github.com/cleanaz-dev/hueline-sub000/internal/server"
	"github.com/cleanaz-dev/hueline-sub000/internal/tracer"
	"github.com/cleanaz-dev/hueline-sub000/pkg/database"
)

func main() {
	// 0. Initialize Tracer
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
		log.Println("Background: Starting Scope Extraction Listener...")
		if err := container.ExtractionService.Start(); err != nil {
			log.Printf("Background Extraction Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Scope Stream Consumer...")
		if err := container.StreamConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Stream Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
