package handlers

import (
	"net/http"
	"strconv"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"

	"github.com/kokolodziejska/zagrane/config"
	"github.com/kokolodziejska/zagrane/models"
)

// differenceFormula — формула колонки «Różnica» на экране лимитов.
// Задана выражением, как и производные колонки в экспорте.
var differenceFormula, _ = govaluate.NewEvaluableExpression("needs - assigned")

// latestVersion выбирает последнюю версию строки: максимальная versionDate,
// версии без даты считаются самыми старыми.
func latestVersion(datas []models.RowData) *models.RowData {
	var latest *models.RowData
	for i := range datas {
		d := &datas[i]
		if latest == nil {
			latest = d
			continue
		}
		if d.VersionDate != nil && (latest.VersionDate == nil || d.VersionDate.After(*latest.VersionDate)) {
			latest = d
		}
	}
	return latest
}

// perDepartment агрегирует значение выбранной колонки последних версий строк
// по подразделениям таблицы.
func perDepartment(table *models.Table, pick func(*models.RowData) float64) map[string]float64 {
	out := make(map[string]float64)
	for i := range table.DepartmentTables {
		dept := &table.DepartmentTables[i]
		sum := 0.0
		for j := range dept.Rows {
			if latest := latestVersion(dept.Rows[j].RowDatas); latest != nil {
				sum += pick(latest)
			}
		}
		out[dept.Department.Type] = sum
	}
	return out
}

func loadTableForAggregation(c *gin.Context) (*models.Table, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Niepoprawny identyfikator tabeli"})
		return nil, false
	}

	var table models.Table
	if err := tableQuery(config.DB).First(&table, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tabela nie została znaleziona"})
		return nil, false
	}
	return &table, true
}

// GetNeedsPerDepartmentHandler: подразделение -> сумма potrzeb finansowych
// (первый период) по последним версиям строк.
func GetNeedsPerDepartmentHandler(c *gin.Context) {
	table, ok := loadTableForAggregation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, perDepartment(table, func(d *models.RowData) float64 {
		return d.FinancialNeeds0
	}))
}

// GetLimitsPerDepartmentHandler: подразделение -> сумма przyznanych limitów
// (первый период) по последним версиям строк.
func GetLimitsPerDepartmentHandler(c *gin.Context) {
	table, ok := loadTableForAggregation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, perDepartment(table, func(d *models.RowData) float64 {
		return d.ExpenditureLimit0
	}))
}

// GetTotalBudgetHandler отдает глобальный лимит бюджета таблицы одним числом.
func GetTotalBudgetHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Niepoprawny identyfikator tabeli"})
		return
	}

	var table models.Table
	if err := config.DB.First(&table, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tabela nie została znaleziona"})
		return
	}

	c.JSON(http.StatusOK, table.Budget)
}

// limitsSummaryRow — строка сводки лимитов для одного подразделения.
type limitsSummaryRow struct {
	Department string  `json:"department"`
	Needs      float64 `json:"needs"`
	Assigned   float64 `json:"assigned"`
	Difference float64 `json:"difference"`
}

// buildLimitsSummary считает сводку potrzeby/limit/różnica по подразделениям.
func buildLimitsSummary(table *models.Table) []limitsSummaryRow {
	needs := perDepartment(table, func(d *models.RowData) float64 { return d.FinancialNeeds0 })
	assigned := perDepartment(table, func(d *models.RowData) float64 { return d.ExpenditureLimit0 })

	rows := make([]limitsSummaryRow, 0, len(table.DepartmentTables))
	for i := range table.DepartmentTables {
		name := table.DepartmentTables[i].Department.Type
		row := limitsSummaryRow{
			Department: name,
			Needs:      needs[name],
			Assigned:   assigned[name],
		}
		result, err := differenceFormula.Evaluate(map[string]interface{}{
			"needs":    row.Needs,
			"assigned": row.Assigned,
		})
		if err == nil {
			if diff, ok := result.(float64); ok {
				row.Difference = diff
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// GetLimitsSummaryHandler отдает готовые строки экрана лимитов.
func GetLimitsSummaryHandler(c *gin.Context) {
	table, ok := loadTableForAggregation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": buildLimitsSummary(table), "totalBudget": table.Budget})
}
