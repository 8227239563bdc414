package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kokolodziejska/zagrane/internal/handlers"
	"github.com/kokolodziejska/zagrane/internal/middleware"
)

// RegisterAPIRoutes регистрирует маршруты API, требующие аутентификации.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		// --- БЮДЖЕТНЫЕ ТАБЛИЦЫ ---
		tables := apiGroup.Group("/tables")
		{
			tables.GET("/headers", handlers.GetTableHeadersHandler)
			tables.POST("/batch-update", handlers.BatchUpdateHandler)
			tables.GET("/:id", handlers.GetTableHandler)
			tables.GET("/:id/generate_spreadsheet", handlers.GenerateSpreadsheetHandler)

			// Экран лимитов
			tables.GET("/:id/get_needs_per_department", handlers.GetNeedsPerDepartmentHandler)
			tables.GET("/:id/get_limits_per_department", handlers.GetLimitsPerDepartmentHandler)
			tables.GET("/:id/get_total_budget", handlers.GetTotalBudgetHandler)
			tables.GET("/:id/limits_summary", handlers.GetLimitsSummaryHandler)
		}

		// --- КЛАССИФИКАЦИЯ ---
		divisions := apiGroup.Group("/divisions")
		{
			divisions.GET("/", handlers.GetDivisionsHandler)
			divisions.GET("/:division/chapters", handlers.GetChaptersByDivisionHandler)
		}
		chapters := apiGroup.Group("/chapters")
		{
			chapters.GET("/:chapter/paragraphs", handlers.GetParagraphsByChapterHandler)
		}

		// --- ПОЛЬЗОВАТЕЛИ ---
		user := apiGroup.Group("/user")
		{
			user.GET("/is_login", handlers.IsLoginHandler)
			user.POST("/change-details", handlers.ChangeDetailsHandler)
			user.GET("/all-users", middleware.AdminMiddleware(), handlers.ListUsersHandler)
		}
	}
}
