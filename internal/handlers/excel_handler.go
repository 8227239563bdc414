package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/kokolodziejska/zagrane/config"
	"github.com/kokolodziejska/zagrane/models"
)

// GenerateSpreadsheetHandler выгружает таблицу в xlsx: лист «Budżet» с
// секциями по подразделениям (последние версии строк) и лист «Limity»
// со сводкой potrzeby/limit/różnica.
func GenerateSpreadsheetHandler(c *gin.Context) {
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

	f := excelize.NewFile()
	defer f.Close()

	budgetSheet := "Budżet"
	f.SetSheetName("Sheet1", budgetSheet)

	rowNum := 1
	for i := range table.DepartmentTables {
		dept := &table.DepartmentTables[i]

		f.SetCellValue(budgetSheet, fmt.Sprintf("A%d", rowNum), dept.Department.Type)
		rowNum++

		for h, header := range TableHeaders {
			cell, _ := excelize.CoordinatesToCellName(h+1, rowNum)
			f.SetCellValue(budgetSheet, cell, header)
		}
		rowNum++

		for j := range dept.Rows {
			latest := latestVersion(dept.Rows[j].RowDatas)
			if latest == nil {
				continue
			}
			for col, v := range spreadsheetValues(latest) {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
				f.SetCellValue(budgetSheet, cell, v)
			}
			rowNum++
		}

		// Пустая строка-разделитель между подразделениями
		rowNum++
	}

	limitsSheet := "Limity"
	if _, err := f.NewSheet(limitsSheet); err == nil {
		for col, header := range []string{"Dział", "Potrzebny Budżet (zł)", "Przydziel Budżet (zł)", "Różnica"} {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(limitsSheet, cell, header)
		}
		for i, row := range buildLimitsSummary(&table) {
			f.SetCellValue(limitsSheet, fmt.Sprintf("A%d", i+2), row.Department)
			f.SetCellValue(limitsSheet, fmt.Sprintf("B%d", i+2), row.Needs)
			f.SetCellValue(limitsSheet, fmt.Sprintf("C%d", i+2), row.Assigned)
			f.SetCellValue(limitsSheet, fmt.Sprintf("D%d", i+2), row.Difference)
		}
	}

	fileName := fmt.Sprintf("budzet_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nie udało się wygenerować pliku"})
	}
}

// spreadsheetValues раскладывает версию строки в порядок колонок экспорта.
func spreadsheetValues(d *models.RowData) []any {
	div, chap, par, group := "", "", "", ""
	if d.Division != nil {
		div = d.Division.Value
	}
	if d.Chapter != nil {
		chap = d.Chapter.Value
	}
	if d.Paragraph != nil {
		par = d.Paragraph.Value
	}
	if d.ExpenseGroup != nil {
		group = d.ExpenseGroup.Definition
	}
	taskFull, taskFunc := "", ""
	if d.TaskBudgetFull != nil {
		taskFull = d.TaskBudgetFull.Value
	}
	if d.TaskBudgetFunction != nil {
		taskFunc = d.TaskBudgetFunction.Value
	}

	return []any{
		d.BudgetPart, div, chap, par, d.FundingSource, group,
		taskFull, taskFunc,
		d.ProgramProjectName, d.OrganizationalUnitName, d.PlanWI,
		d.FundDistributor, d.BudgetCode, d.TaskName, d.TaskJustification,
		d.ExpenditurePurpose,
		d.FinancialNeeds0, d.ExpenditureLimit0, d.UnallocatedTaskFunds0, d.ContractAmount0, d.ContractNumber0,
		d.FinancialNeeds1, d.ExpenditureLimit1, d.UnallocatedTaskFunds1, d.ContractAmount1, d.ContractNumber1,
		d.FinancialNeeds2, d.ExpenditureLimit2, d.UnallocatedTaskFunds2, d.ContractAmount2, d.ContractNumber2,
		d.FinancialNeeds3, d.ExpenditureLimit3, d.UnallocatedTaskFunds3, d.ContractAmount3, d.ContractNumber3,
		d.SubsidyAgreementParty, d.LegalBasisForSubsidy, d.Notes,
	}
}
