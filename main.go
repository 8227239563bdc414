package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/kokolodziejska/zagrane/config"
	"github.com/kokolodziejska/zagrane/internal/routes"
	"github.com/kokolodziejska/zagrane/models"
)

func main() {
	config.LoadJwtKey()
	config.ConnectDB()
	config.ConnectRedis()

	// Автомиграция схемы: справочники, иерархия таблиц, пользователи
	err := config.DB.AutoMigrate(
		&models.Department{},
		&models.Status{},
		&models.Division{},
		&models.Chapter{},
		&models.ExpenseGroup{},
		&models.Paragraph{},
		&models.Task{},
		&models.Table{},
		&models.DepartmentTable{},
		&models.Row{},
		&models.RowData{},
		&models.User{},
		&models.UserAuth{},
	)
	if err != nil {
		slog.Error("Ошибка миграции схемы БД", "error", err)
		os.Exit(1)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("Сервер запускается", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Сервер завершился с ошибкой", "error", err)
		os.Exit(1)
	}
}
