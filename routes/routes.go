package routes

import (
	"net/http"
	"time"

	"soulspace/handlers"
	"soulspace/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the requester-facing booking endpoints.
func RegisterUserRoutes(r *gin.Engine) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.RequireUser())
		api.GET("/providers/:id/slots", handlers.ListAvailableSlots)
		api.POST("/appointments", handlers.CreateAppointment)
		api.GET("/appointments", handlers.ListUserAppointments)
		api.GET("/appointments/:id", handlers.GetUserAppointment)
		api.POST("/appointments/:id/cancel", handlers.CancelUserAppointment)
		api.POST("/appointments/:id/payments", handlers.RecordPayment)
	}
}

// RegisterProviderRoutes registers the provider-facing calendar, triage and
// earnings endpoints.
func RegisterProviderRoutes(r *gin.Engine) {
	api := r.Group("/api/provider")
	{
		api.Use(middleware.RequireProvider())
		api.POST("/slots", handlers.PublishSlot)
		api.GET("/slots", handlers.ListProviderSlots)
		api.DELETE("/slots/:id", handlers.RemoveSlot)
		api.GET("/appointments", handlers.ListProviderAppointments)
		api.GET("/appointments/:id", handlers.GetProviderAppointment)
		api.POST("/appointments/:id/action", handlers.ActOnAppointment)
		api.POST("/appointments/:id/cancel", handlers.CancelProviderAppointment)
		api.GET("/wallet", handlers.GetProviderWallet)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm SoulSpace"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r)
	RegisterProviderRoutes(r)
}
