package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kokolodziejska/zagrane/config"
	"github.com/kokolodziejska/zagrane/models"
)

// GetTableHeadersHandler отдает подписи колонок. Их количество определяет
// длину values на клиенте.
func GetTableHeadersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, TableHeaders)
}

// tableQuery собирает запрос полной иерархии таблицы со всеми справочниками.
// Мягко удаленные строки в выдачу не попадают, их версии остаются в БД.
func tableQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("DepartmentTables.Department").
		Preload("DepartmentTables.Status").
		Preload("DepartmentTables.Rows", "is_deleted = ?", false).
		Preload("DepartmentTables.Rows.RowDatas.Division").
		Preload("DepartmentTables.Rows.RowDatas.Chapter").
		Preload("DepartmentTables.Rows.RowDatas.Paragraph").
		Preload("DepartmentTables.Rows.RowDatas.ExpenseGroup").
		Preload("DepartmentTables.Rows.RowDatas.TaskBudgetFull").
		Preload("DepartmentTables.Rows.RowDatas.TaskBudgetFunction")
}

// GetTableHandler возвращает вложенную структуру одной бюджетной таблицы:
// подразделения -> строки -> все исторические версии.
func GetTableHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Niepoprawny identyfikator tabeli"})
		return
	}

	var table models.Table
	if err := tableQuery(config.DB).First(&table, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tabela nie została znaleziona"})
		return
	}

	c.JSON(http.StatusOK, table)
}

// BatchUpdateHandler применяет весь пакет изменений клиента в одной
// транзакции. Каждое обновление создает новую версию строки; удаление —
// мягкое. Удаление строки, которой нет в БД (в том числе rowId = null),
// пропускается как no-op: клиент имеет право прислать удаление никогда
// не сохранявшейся строки.
func BatchUpdateHandler(c *gin.Context) {
	var changes []BatchChange
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	applied, skipped := 0, 0

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			if change.IsDeleted {
				if change.RowID == nil {
					skipped++
					continue
				}
				var row models.Row
				if err := tx.First(&row, *change.RowID).Error; err != nil {
					skipped++
					continue
				}
				row.IsDeleted = true
				row.LastUpdate = now
				if err := tx.Save(&row).Error; err != nil {
					return err
				}
				applied++
				continue
			}

			rowID, err := resolveRow(tx, change, now)
			if err != nil {
				return err
			}

			data := mapRowData(tx, change, now)
			data.RowID = rowID
			if err := tx.Create(&data).Error; err != nil {
				return err
			}
			applied++
		}
		return nil
	})

	if err != nil {
		slog.Error("Ошибка применения batch-update", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nie udało się zapisać zmian"})
		return
	}

	slog.Info("Пакет изменений применен", "applied", applied, "skipped", skipped)
	c.JSON(http.StatusOK, gin.H{"applied": applied, "skipped": skipped})
}

// resolveRow находит строку изменения или создает новую для rowId = null.
func resolveRow(tx *gorm.DB, change BatchChange, now time.Time) (uint, error) {
	if change.RowID != nil {
		var row models.Row
		if err := tx.First(&row, *change.RowID).Error; err == nil {
			row.LastUpdate = now
			if err := tx.Save(&row).Error; err != nil {
				return 0, err
			}
			return row.ID, nil
		}
		// Неизвестный rowId: заводим строку заново, версии не теряем
	}

	row := models.Row{LastUpdate: now}
	if change.DepartmentTableID != nil {
		row.DepartmentTableID = *change.DepartmentTableID
	} else {
		// Без подтаблицы привязываем к первой подтаблице таблицы
		var dept models.DepartmentTable
		if err := tx.Where("table_id = ?", change.TableID).Order("id asc").First(&dept).Error; err == nil {
			row.DepartmentTableID = dept.ID
		}
	}
	if err := tx.Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}
