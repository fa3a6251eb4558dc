package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/socialhub-app/backend/internal/media"
	"github.com/socialhub-app/backend/internal/router"
	"github.com/socialhub-app/backend/pkg/config"
	"github.com/socialhub-app/backend/pkg/firebase"
	"github.com/socialhub-app/backend/pkg/logger"
	"github.com/socialhub-app/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Env)

	// Initialize database connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase and the media upload relay
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	relay := media.NewRelay(firebaseApp.Bucket, cfg.StorageBucket)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e, log)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, relay, cfg, log)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
