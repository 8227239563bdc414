package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kokolodziejska/zagrane/internal/middleware"
)

// SetupRoutes инициализирует все маршруты приложения.
func SetupRoutes(r *gin.Engine) {
	// Публичные маршруты: вход, регистрация, выход.
	RegisterAuthRoutes(r)

	// Все остальное доступно только с действительным токеном.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
