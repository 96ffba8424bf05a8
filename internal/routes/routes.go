package routes

import (
	"net/http"

	"xideaflow_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route of the application.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.CreditHandler.RegisterRoutes(api)
		appHandlers.SubscriptionHandler.RegisterRoutes(api)
		appHandlers.WebhookHandler.RegisterRoutes(api)
		appHandlers.ServiceHandler.RegisterRoutes(api)
		appHandlers.GeneratorHandler.RegisterRoutes(api)
		appHandlers.MarketplaceHandler.RegisterRoutes(api)
		appHandlers.SchedulerHandler.RegisterRoutes(api)
	}
}
