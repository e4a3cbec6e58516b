package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pinpair/pkg/api"
	"pinpair/pkg/config"
	"pinpair/pkg/middleware"
	"pinpair/pkg/services"
	"pinpair/pkg/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		utils.Logger.Info("No .env file found, using environment variables")
	}

	utils.InitLogger("pinpair")

	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize services
	sessionService := services.NewPairingSessionService(
		cfg.SessionTTL,
		cfg.PinLength,
		cfg.MaxAttempts,
	)

	// Set Gin to release mode in production
	gin.SetMode(gin.DebugMode)

	// Create a new Gin router with default middleware
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Initialize handlers
	handlers := api.NewHandlers(sessionService)

	// Register routes
	router.POST("/pair", handlers.HandlePairDevice)
	router.GET("/submit-pin", handlers.HandleSubmitPin)
	router.GET("/unpair", handlers.HandleUnpair)
	router.GET("/health", handlers.HealthCheck)

	// Start the server
	utils.Logger.Infof("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.Logger.Fatalf("Error starting server: %v", err)
	}
}
