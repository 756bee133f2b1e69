package routes

import (
	"net/http"

	"nautikos_backend/internal/handlers"
	"nautikos_backend/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires every HTTP route onto ginRouter.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.OnboardingHandler.RegisterRoutes(api, authMW)
		appHandlers.ModerationHandler.RegisterRoutes(api, authMW)
		appHandlers.InvitationHandler.RegisterRoutes(api, authMW)
		appHandlers.ReferenceHandler.RegisterRoutes(api, authMW)
		appHandlers.BillingHandler.RegisterRoutes(api, authMW)
	}
	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
