package worksheet

import "regexp"

// Порядок колонок рабочего листа. Совпадает с порядком заголовков,
// которые отдает GET /api/tables/headers.
const (
	ColBudgetPart = iota
	ColDivision
	ColChapter
	ColParagraph
	ColFundingSource
	ColExpenseGroup
	ColTaskBudgetFull
	ColTaskBudgetFunction
	ColProgramProjectName
	ColOrganizationalUnitName
	ColPlanWI
	ColFundDistributor
	ColBudgetCode
	ColTaskName
	ColTaskJustification
	ColExpenditurePurpose

	ColFinancialNeeds0
	ColExpenditureLimit0
	ColUnallocatedTaskFunds0
	ColContractAmount0
	ColContractNumber0

	ColFinancialNeeds1
	ColExpenditureLimit1
	ColUnallocatedTaskFunds1
	ColContractAmount1
	ColContractNumber1

	ColFinancialNeeds2
	ColExpenditureLimit2
	ColUnallocatedTaskFunds2
	ColContractAmount2
	ColContractNumber2

	ColFinancialNeeds3
	ColExpenditureLimit3
	ColUnallocatedTaskFunds3
	ColContractAmount3
	ColContractNumber3

	ColSubsidyAgreementParty
	ColLegalBasisForSubsidy
	ColNotes

	// ColumnCount — фиксированная длина values каждой строки
	ColumnCount
)

var (
	reBudgetPart = regexp.MustCompile(`^\d{2}$`)
	reDivision   = regexp.MustCompile(`^\d{3}$`)
	reChapter    = regexp.MustCompile(`^\d{5}$`)
	reParagraph  = regexp.MustCompile(`^\d{4}$`)
	reAmount     = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// columnPatterns задает формат значения по индексу колонки.
// nil — колонка без ограничений.
var columnPatterns = map[int]*regexp.Regexp{
	ColBudgetPart: reBudgetPart,
	ColDivision:   reDivision,
	ColChapter:    reChapter,
	ColParagraph:  reParagraph,

	ColFinancialNeeds0:       reAmount,
	ColExpenditureLimit0:     reAmount,
	ColUnallocatedTaskFunds0: reAmount,
	ColContractAmount0:       reAmount,

	ColFinancialNeeds1:       reAmount,
	ColExpenditureLimit1:     reAmount,
	ColUnallocatedTaskFunds1: reAmount,
	ColContractAmount1:       reAmount,

	ColFinancialNeeds2:       reAmount,
	ColExpenditureLimit2:     reAmount,
	ColUnallocatedTaskFunds2: reAmount,
	ColContractAmount2:       reAmount,

	ColFinancialNeeds3:       reAmount,
	ColExpenditureLimit3:     reAmount,
	ColUnallocatedTaskFunds3: reAmount,
	ColContractAmount3:       reAmount,
}

// selectColumns — колонки, заполняемые через каскадный выбор классификации.
// Свободный ввод текста в них запрещен; ColExpenseGroup вообще не редактируется
// пользователем, а выводится из выбранного параграфа.
var selectColumns = map[int]bool{
	ColDivision:     true,
	ColChapter:      true,
	ColParagraph:    true,
	ColExpenseGroup: true,
}

// CellValid проверяет значение по формату колонки. Пустое значение всегда
// допустимо: отсутствующие поля бэкенда превращаются в пустые строки.
func CellValid(col int, value string) bool {
	if value == "" {
		return true
	}
	re, ok := columnPatterns[col]
	if !ok || re == nil {
		return true
	}
	return re.MatchString(value)
}
