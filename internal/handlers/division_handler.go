package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kokolodziejska/zagrane/config"
	"github.com/kokolodziejska/zagrane/models"
)

// GetDivisionsHandler возвращает полный справочник działów.
func GetDivisionsHandler(c *gin.Context) {
	var divisions []models.Division
	if err := config.DB.Order("value asc").Find(&divisions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch divisions"})
		return
	}
	if divisions == nil {
		divisions = make([]models.Division, 0)
	}
	c.JSON(http.StatusOK, divisions)
}

// GetChaptersByDivisionHandler возвращает rozdziały выбранного działu.
// Клиент кэширует списки по значению działu, поэтому параметр пути — value.
func GetChaptersByDivisionHandler(c *gin.Context) {
	value := c.Param("division")

	var division models.Division
	if err := config.DB.Where("value = ?", value).First(&division).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dział nie został znaleziony"})
		return
	}

	var chapters []models.Chapter
	if err := config.DB.Where("division_id = ?", division.ID).Order("value asc").Find(&chapters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch chapters"})
		return
	}
	if chapters == nil {
		chapters = make([]models.Chapter, 0)
	}
	c.JSON(http.StatusOK, chapters)
}

// GetParagraphsByChapterHandler возвращает paragrafy выбранного rozdziału
// вместе с grupami wydatków — клиент выводит grupę из выбранного paragrafu
// без дополнительного запроса.
func GetParagraphsByChapterHandler(c *gin.Context) {
	value := c.Param("chapter")

	var chapter models.Chapter
	if err := config.DB.Where("value = ?", value).First(&chapter).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rozdział nie został znaleziony"})
		return
	}

	var paragraphs []models.Paragraph
	if err := config.DB.Preload("ExpenseGroup").
		Where("chapter_id = ?", chapter.ID).
		Order("value asc").
		Find(&paragraphs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch paragraphs"})
		return
	}
	if paragraphs == nil {
		paragraphs = make([]models.Paragraph, 0)
	}
	c.JSON(http.StatusOK, paragraphs)
}
