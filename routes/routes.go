package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docquiz/handlers"
	"docquiz/middleware"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	uploadHandler *handlers.UploadHandler,
	triviaHandler *handlers.TriviaHandler,
	playHandler *handlers.PlayHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	jwtSecret string,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			protected.POST("/intake", projectHandler.Intake)
			projects := protected.Group("/projects")
			{
				projects.GET("", projectHandler.List)
				projects.GET("/:id", projectHandler.Detail)
				projects.GET("/:id/analytics", projectHandler.Analytics)
			}

			protected.POST("/upload", uploadHandler.Upload)
			protected.POST("/process-document", triviaHandler.ProcessDocument)

			trivia := protected.Group("/trivia")
			{
				trivia.POST("", triviaHandler.Create)
				trivia.PUT("/:id", triviaHandler.Save)
				trivia.POST("/:id/generate-url", triviaHandler.GenerateURL)
			}
		}

		// The play fetch works for both the owner and anonymous
		// respondents; ownership is resolved inside the service.
		optional := api.Group("/")
		optional.Use(middleware.OptionalAuthMiddleware(jwtSecret))
		{
			optional.GET("/trivia/:id", triviaHandler.Get)

			play := optional.Group("/play/:id")
			{
				play.POST("/session", playHandler.StartSession)
				play.GET("/session/:sessionId", playHandler.State)
				play.POST("/session/:sessionId/answer", playHandler.Answer)
				play.POST("/session/:sessionId/next", playHandler.Next)
			}
		}

		// Analytics ingestion is public: respondent browsers post events
		// without credentials.
		api.POST("/analytics", analyticsHandler.Record)
		api.GET("/analytics/:id", analyticsHandler.Summary)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
