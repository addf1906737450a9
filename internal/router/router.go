package router

import (
	"log"

	"github.com/PlayHaven/PlayHaven/internal/delivery"
	"github.com/PlayHaven/PlayHaven/internal/handlers"
	"github.com/PlayHaven/PlayHaven/internal/middleware"
	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/realtime"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"github.com/PlayHaven/PlayHaven/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.PlayStation{},
		&models.Xbox{},
		&models.Steam{},
		&models.Nintendo{},
		&models.Discord{},
		&models.ChatRoom{},
		&models.ChatMembership{},
		&models.ChatMessage{},
		&models.Friendship{},
		&models.Notification{},
		&models.Comment{},
		&models.Like{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	chatRepo := repositories.NewPostgresChatRepository(pgdb)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	mediaRepo := repositories.NewMongoMediaRepository(mgClient.Database("playhaven"))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)

	// --- Realtime delivery ---
	hub := realtime.NewHub()
	notifier := delivery.NewNotifier(notificationRepo, hub)
	coordinator := delivery.NewCoordinator(chatRepo, userRepo, hub, notifier)
	friendshipService := delivery.NewFriendshipService(friendshipRepo, userRepo, notifier, cfg.NotifyOnReject)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, profileRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Websocket endpoint (token authenticated in the handshake) ---
	wsHandler := handlers.NewWSHandler(hub, coordinator, cfg.JWTSecret)
	wsHandler.RegisterWSRoutes(e)
	log.Println("Websocket endpoint configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api group.")

	authHandler.RegisterAccountRoutes(api)

	profileHandler := handlers.NewProfileHandler(profileRepo, userRepo, friendshipRepo)
	profileHandler.RegisterProfileRoutes(api.Group("/profile"))
	log.Println("Profile routes configured.")

	chatHandler := handlers.NewChatHandler(chatRepo, coordinator)
	chatHandler.RegisterChatRoutes(api.Group("/chat"))
	log.Println("Chat routes configured.")

	friendshipHandler := handlers.NewFriendshipHandler(friendshipService)
	friendshipHandler.RegisterFriendshipRoutes(api.Group("/friends"))
	log.Println("Friendship routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, notifier)
	notificationHandler.RegisterNotificationRoutes(api.Group("/notifications"))
	log.Println("Notification routes configured.")

	mediaGroup := api.Group("/media")
	mediaHandler := handlers.NewMediaHandler(mediaRepo)
	mediaHandler.RegisterMediaRoutes(mediaGroup)

	commentHandler := handlers.NewCommentHandler(commentRepo, mediaRepo, notifier)
	commentHandler.RegisterCommentRoutes(mediaGroup)

	likeHandler := handlers.NewLikeHandler(likeRepo, mediaRepo, notifier)
	likeHandler.RegisterLikeRoutes(mediaGroup)
	log.Println("Media routes configured.")
}
