package handlers

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kokolodziejska/zagrane/internal/worksheet"
	"github.com/kokolodziejska/zagrane/models"
)

// BatchChange — один элемент тела batch-update. Формат клиента: полный снимок
// values строки плюс идентичность (tableId, departmentTableId, rowId).
type BatchChange struct {
	TableID           uint     `json:"tableId"`
	DepartmentTableID *uint    `json:"departmentTableId"`
	RowID             *uint    `json:"rowId"`
	IsDeleted         bool     `json:"isDeleted"`
	Values            []string `json:"values"`
	LastUserID        *uint    `json:"lastUserId"`
	LastUpdate        string   `json:"lastUpdate"`
}

// zeroTokens — строковые значения денежных колонок, трактуемые как 0.
var zeroTokens = map[string]bool{
	"":            true,
	"nie dotyczy": true,
	"-":           true,
	"draft":       true,
}

// parseAmount разбирает денежную колонку. Нераспознаваемое значение дает 0,
// а не ошибку: валидация формата — забота клиента до сохранения.
func parseAmount(raw string) float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if zeroTokens[s] {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseClientTime разбирает lastUpdate клиента; при сбое берется текущее время.
func parseClientTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now().UTC()
}

func valueAt(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[idx])
}

// mapRowData собирает новую версию строки из плоских values, разрешая коды
// классификации в идентификаторы справочников. Неизвестный код оставляет
// ссылку пустой, не прерывая сохранение.
func mapRowData(db *gorm.DB, change BatchChange, now time.Time) models.RowData {
	vals := change.Values

	data := models.RowData{
		VersionDate: &now,
		LastUpdate:  parseClientTime(change.LastUpdate),

		BudgetPart:    valueAt(vals, worksheet.ColBudgetPart),
		FundingSource: valueAt(vals, worksheet.ColFundingSource),

		ProgramProjectName:     valueAt(vals, worksheet.ColProgramProjectName),
		OrganizationalUnitName: valueAt(vals, worksheet.ColOrganizationalUnitName),
		PlanWI:                 valueAt(vals, worksheet.ColPlanWI),
		FundDistributor:        valueAt(vals, worksheet.ColFundDistributor),
		BudgetCode:             valueAt(vals, worksheet.ColBudgetCode),
		TaskName:               valueAt(vals, worksheet.ColTaskName),
		TaskJustification:      valueAt(vals, worksheet.ColTaskJustification),
		ExpenditurePurpose:     valueAt(vals, worksheet.ColExpenditurePurpose),

		FinancialNeeds0:       parseAmount(valueAt(vals, worksheet.ColFinancialNeeds0)),
		ExpenditureLimit0:     parseAmount(valueAt(vals, worksheet.ColExpenditureLimit0)),
		UnallocatedTaskFunds0: parseAmount(valueAt(vals, worksheet.ColUnallocatedTaskFunds0)),
		ContractAmount0:       parseAmount(valueAt(vals, worksheet.ColContractAmount0)),
		ContractNumber0:       valueAt(vals, worksheet.ColContractNumber0),

		FinancialNeeds1:       parseAmount(valueAt(vals, worksheet.ColFinancialNeeds1)),
		ExpenditureLimit1:     parseAmount(valueAt(vals, worksheet.ColExpenditureLimit1)),
		UnallocatedTaskFunds1: parseAmount(valueAt(vals, worksheet.ColUnallocatedTaskFunds1)),
		ContractAmount1:       parseAmount(valueAt(vals, worksheet.ColContractAmount1)),
		ContractNumber1:       valueAt(vals, worksheet.ColContractNumber1),

		FinancialNeeds2:       parseAmount(valueAt(vals, worksheet.ColFinancialNeeds2)),
		ExpenditureLimit2:     parseAmount(valueAt(vals, worksheet.ColExpenditureLimit2)),
		UnallocatedTaskFunds2: parseAmount(valueAt(vals, worksheet.ColUnallocatedTaskFunds2)),
		ContractAmount2:       parseAmount(valueAt(vals, worksheet.ColContractAmount2)),
		ContractNumber2:       valueAt(vals, worksheet.ColContractNumber2),

		FinancialNeeds3:       parseAmount(valueAt(vals, worksheet.ColFinancialNeeds3)),
		ExpenditureLimit3:     parseAmount(valueAt(vals, worksheet.ColExpenditureLimit3)),
		UnallocatedTaskFunds3: parseAmount(valueAt(vals, worksheet.ColUnallocatedTaskFunds3)),
		ContractAmount3:       parseAmount(valueAt(vals, worksheet.ColContractAmount3)),
		ContractNumber3:       valueAt(vals, worksheet.ColContractNumber3),

		SubsidyAgreementParty: valueAt(vals, worksheet.ColSubsidyAgreementParty),
		LegalBasisForSubsidy:  valueAt(vals, worksheet.ColLegalBasisForSubsidy),
		Notes:                 valueAt(vals, worksheet.ColNotes),
	}

	if change.LastUserID != nil {
		data.LastUserID = *change.LastUserID
	}

	if v := valueAt(vals, worksheet.ColDivision); v != "" {
		var division models.Division
		if err := db.Where("value = ?", v).First(&division).Error; err == nil {
			data.DivisionID = &division.ID
		}
	}
	if v := valueAt(vals, worksheet.ColChapter); v != "" {
		var chapter models.Chapter
		if err := db.Where("value = ?", v).First(&chapter).Error; err == nil {
			data.ChapterID = &chapter.ID
		}
	}
	if v := valueAt(vals, worksheet.ColParagraph); v != "" {
		query := db.Where("value = ?", v)
		if data.ChapterID != nil {
			query = query.Where("chapter_id = ?", *data.ChapterID)
		}
		var paragraph models.Paragraph
		if err := query.First(&paragraph).Error; err == nil {
			data.ParagraphID = &paragraph.ID
			// Grupa wydatków выводится из paragrafu, значение колонки — подсказка
			data.ExpenseGroupID = paragraph.ExpenseGroupID
		}
	}
	if data.ExpenseGroupID == nil {
		if v := valueAt(vals, worksheet.ColExpenseGroup); v != "" {
			var group models.ExpenseGroup
			if err := db.Where("definition = ?", v).First(&group).Error; err == nil {
				data.ExpenseGroupID = &group.ID
			}
		}
	}
	if v := valueAt(vals, worksheet.ColTaskBudgetFull); v != "" {
		var task models.Task
		if err := db.Where("value = ?", v).First(&task).Error; err == nil {
			data.TaskBudgetFullID = &task.ID
		}
	}
	if v := valueAt(vals, worksheet.ColTaskBudgetFunction); v != "" {
		var task models.Task
		if err := db.Where("value = ?", v).First(&task).Error; err == nil {
			data.TaskBudgetFunctionID = &task.ID
		}
	}

	return data
}
