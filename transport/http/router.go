package http

import (
	"github.com/gin-gonic/gin"

	"github.com/CardPass-Solana/backend-infra/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, cookie CookieConfig) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(authService, cookie)

	router.GET("/", handlers.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/challenge", handlers.Challenge)
		auth.POST("/verify", handlers.Verify)
		auth.POST("/logout", handlers.Logout)
		auth.GET("/me", handlers.Me)
	}

	return router
}
