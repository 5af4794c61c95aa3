package main

import (
	"log"

	"github.com/joho/godotenv"

	"notes-service/internal/config"
	"notes-service/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Notes: No .env file found, relying on system env vars")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	if err := server.Run(cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
