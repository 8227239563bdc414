package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kokolodziejska/zagrane/internal/handlers"
)

// RegisterAuthRoutes регистрирует публичные маршруты аутентификации.
func RegisterAuthRoutes(r *gin.Engine) {
	user := r.Group("/api/user")
	{
		user.POST("/register", handlers.RegisterHandler)
		user.POST("/login", handlers.LoginHandler)
		user.POST("/logout", handlers.LogoutHandler)
	}
}
