package worksheet

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kokolodziejska/zagrane/internal/apiclient"
)

// BudgetRow — одна версия одной строки бюджета в плоском рабочем наборе.
type BudgetRow struct {
	TableID           int64
	DepartmentTableID *int64
	RowID             *int64
	VersionDate       *time.Time
	LastUserID        *int64
	LastUpdate        *time.Time
	Values            []string

	// key — стабильный ключ идентичности для группировки и журнала изменений.
	// Для строк без RowID генерируется uuid, поэтому две несохраненные строки
	// никогда не склеиваются между собой.
	key string
}

// Key возвращает ключ идентичности строки.
func (r *BudgetRow) Key() string { return r.key }

func identityKey(rowID *int64) string {
	if rowID != nil {
		return "id_" + strconv.FormatInt(*rowID, 10)
	}
	return "u_" + uuid.NewString()
}

// flatten разворачивает вложенный ответ бэкенда в плоский список:
// по одной BudgetRow на каждую историческую версию каждой строки.
func flatten(table *apiclient.TableData) []*BudgetRow {
	if table == nil {
		return []*BudgetRow{}
	}

	rows := make([]*BudgetRow, 0)
	for _, dept := range table.DepartmentTables {
		deptID := dept.ID
		for _, node := range dept.Rows {
			for i := range node.RowDatas {
				rv := &node.RowDatas[i]
				row := &BudgetRow{
					TableID:           table.ID,
					DepartmentTableID: ptrInt64(deptID),
					RowID:             rv.RowID,
					VersionDate:       parseTime(rv.VersionDate),
					LastUserID:        rv.LastUserID,
					LastUpdate:        parseTime(rv.LastUpdate),
					Values:            extractValues(rv),
				}
				row.key = identityKey(row.RowID)
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// extractValues собирает фиксированный упорядоченный срез из 39 полей версии.
// Отсутствующие и null-поля становятся пустой строкой.
func extractValues(rv *apiclient.RowVersion) []string {
	values := make([]string, ColumnCount)

	values[ColBudgetPart] = strOrEmpty(rv.BudgetPart)
	if rv.Division != nil {
		values[ColDivision] = rv.Division.Value
	}
	if rv.Chapter != nil {
		values[ColChapter] = rv.Chapter.Value
	}
	if rv.Paragraph != nil {
		values[ColParagraph] = rv.Paragraph.Value
	}
	values[ColFundingSource] = strOrEmpty(rv.FundingSource)
	if rv.ExpenseGroup != nil {
		values[ColExpenseGroup] = rv.ExpenseGroup.Definition
	}
	if rv.TaskBudgetFull != nil {
		values[ColTaskBudgetFull] = rv.TaskBudgetFull.Value
	}
	if rv.TaskBudgetFunction != nil {
		values[ColTaskBudgetFunction] = rv.TaskBudgetFunction.Value
	}
	values[ColProgramProjectName] = strOrEmpty(rv.ProgramProjectName)
	values[ColOrganizationalUnitName] = strOrEmpty(rv.OrganizationalUnitName)
	values[ColPlanWI] = strOrEmpty(rv.PlanWI)
	values[ColFundDistributor] = strOrEmpty(rv.FundDistributor)
	values[ColBudgetCode] = strOrEmpty(rv.BudgetCode)
	values[ColTaskName] = strOrEmpty(rv.TaskName)
	values[ColTaskJustification] = strOrEmpty(rv.TaskJustification)
	values[ColExpenditurePurpose] = strOrEmpty(rv.ExpenditurePurpose)

	values[ColFinancialNeeds0] = rv.FinancialNeeds0.String()
	values[ColExpenditureLimit0] = rv.ExpenditureLimit0.String()
	values[ColUnallocatedTaskFunds0] = rv.UnallocatedTaskFunds0.String()
	values[ColContractAmount0] = rv.ContractAmount0.String()
	values[ColContractNumber0] = strOrEmpty(rv.ContractNumber0)

	values[ColFinancialNeeds1] = rv.FinancialNeeds1.String()
	values[ColExpenditureLimit1] = rv.ExpenditureLimit1.String()
	values[ColUnallocatedTaskFunds1] = rv.UnallocatedTaskFunds1.String()
	values[ColContractAmount1] = rv.ContractAmount1.String()
	values[ColContractNumber1] = strOrEmpty(rv.ContractNumber1)

	values[ColFinancialNeeds2] = rv.FinancialNeeds2.String()
	values[ColExpenditureLimit2] = rv.ExpenditureLimit2.String()
	values[ColUnallocatedTaskFunds2] = rv.UnallocatedTaskFunds2.String()
	values[ColContractAmount2] = rv.ContractAmount2.String()
	values[ColContractNumber2] = strOrEmpty(rv.ContractNumber2)

	values[ColFinancialNeeds3] = rv.FinancialNeeds3.String()
	values[ColExpenditureLimit3] = rv.ExpenditureLimit3.String()
	values[ColUnallocatedTaskFunds3] = rv.UnallocatedTaskFunds3.String()
	values[ColContractAmount3] = rv.ContractAmount3.String()
	values[ColContractNumber3] = strOrEmpty(rv.ContractNumber3)

	values[ColSubsidyAgreementParty] = strOrEmpty(rv.SubsidyAgreementParty)
	values[ColLegalBasisForSubsidy] = strOrEmpty(rv.LegalBasisForSubsidy)
	values[ColNotes] = strOrEmpty(rv.Notes)

	return values
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrInt64(v int64) *int64 { return &v }

func parseTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}
