package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/socialhub-app/backend/internal/handlers"
	"github.com/socialhub-app/backend/internal/media"
	"github.com/socialhub-app/backend/internal/middleware"
	"github.com/socialhub-app/backend/internal/models"
	"github.com/socialhub-app/backend/internal/repositories"
	"github.com/socialhub-app/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log *logrus.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
			}
			log.WithFields(fields).Info("request")
			return nil
		},
	}))
	log.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, uploader media.Uploader, cfg *config.Config, log *logrus.Logger) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Info("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))

	// Auth middleware applied per route; the feed and single-post reads stay
	// public while every mutation on the same paths requires a bearer token.
	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo)

	api := e.Group("/api")

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, log)
	authHandler.RegisterAuthRoutes(api.Group("/auth"), auth)
	log.Info("Auth routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, userRepo, uploader, log)
	postHandler.RegisterPostRoutes(api, auth)
	log.Info("Post routes configured.")

	likeHandler := handlers.NewLikeHandler(postRepo, log)
	likeHandler.RegisterLikeRoutes(api, auth)
	log.Info("Like routes configured.")

	commentHandler := handlers.NewCommentHandler(postRepo, log)
	commentHandler.RegisterCommentRoutes(api, auth)
	log.Info("Comment routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, postRepo, log)
	userHandler.RegisterUserRoutes(api, auth)
	log.Info("User routes configured.")

	log.Info("All routes configured.")
}
