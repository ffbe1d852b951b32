package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"docquiz/ai"
	"docquiz/config"
	"docquiz/handlers"
	"docquiz/middleware"
	"docquiz/models"
	"docquiz/routes"
	"docquiz/services"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Document{},
		&models.TriviaExperience{},
		&models.AnalyticsEvent{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	projectService := services.NewProjectService(db)
	documentService := services.NewDocumentService(db)
	analyticsService := services.NewAnalyticsService(db)
	triviaService := services.NewTriviaService(db, redisClient, cfg.AppBaseURL)
	geminiClient := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	conversionService := services.NewConversionService(db, geminiClient)
	sessionStore := services.NewSessionStore(services.DefaultSessionTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, documentService, triviaService, analyticsService)
	uploadHandler := handlers.NewUploadHandler(documentService)
	triviaHandler := handlers.NewTriviaHandler(triviaService, conversionService, analyticsService)
	playHandler := handlers.NewPlayHandler(triviaService, analyticsService, sessionStore)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, projectHandler, uploadHandler, triviaHandler, playHandler, analyticsHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
