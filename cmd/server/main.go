package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"dayflow/internal/app/server"
	"dayflow/internal/platform/config"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	ctx := context.Background()
	app, err := server.New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
