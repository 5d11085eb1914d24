package main

import (
	"log"

	"github.com/fitzer-app/fitzer/backend/config"
	"github.com/fitzer-app/fitzer/backend/internal/database"
	"github.com/fitzer-app/fitzer/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// Rate limiting and the plan cache degrade gracefully without Redis.
		log.Printf("Warning: Redis unavailable, continuing without it: %v", err)
		redisClient = nil
	}

	srv := server.New(cfg, db, redisClient)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
