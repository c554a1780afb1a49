package routes

import (
	"time"

	"slotsense/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWebhookRoutes registers the booking webhook endpoint. The webhook ID
// path segment comes from configuration so deployments can rotate it.
func RegisterWebhookRoutes(r *gin.Engine, wh *handlers.WebhookHandler, webhookID string) {
	r.POST("/webhook/"+webhookID, wh.HandleWebhook)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, wh *handlers.WebhookHandler, webhookID string) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWebhookRoutes(r, wh, webhookID)
	RegisterHealthRoute(r)
}
