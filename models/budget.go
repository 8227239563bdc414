package models

import (
	"encoding/json"
	"time"
)

// Table представляет одну бюджетную таблицу (год/версия) со всеми данными подразделений
type Table struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	Year             float64           `json:"year"`
	Version          string            `json:"version"`
	IsOpen           bool              `json:"isOpen"`
	Budget           float64           `json:"budget"` // глобальный лимит бюджета таблицы
	DepartmentTables []DepartmentTable `json:"department_tables" gorm:"foreignKey:TableID"`
}

// DepartmentTable представляет подтаблицу одного подразделения внутри бюджетной таблицы
type DepartmentTable struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	TableID      uint       `json:"table_id" gorm:"index"`
	DepartmentID uint       `json:"-"`
	Department   Department `json:"department" gorm:"foreignKey:DepartmentID"`
	StatusID     uint       `json:"-"`
	Status       Status     `json:"status" gorm:"foreignKey:StatusID"`
	Start        time.Time  `json:"start"`
	End          time.Time  `json:"end"`
	Rows         []Row      `json:"rows" gorm:"foreignKey:DepartmentTableID"`
}

// Row представляет стабильную идентичность строки бюджета; версии хранятся в RowDatas
type Row struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	DepartmentTableID uint      `json:"department_table_id" gorm:"index"`
	LastUpdate        time.Time `json:"last_update"`
	NextYear          bool      `json:"next_year"`
	IsDeleted         bool      `json:"-"` // мягкое удаление: строка скрывается из выдачи, версии сохраняются
	RowDatas          []RowData `json:"row_datas" gorm:"foreignKey:RowID"`
}

// RowData представляет один исторический снимок значений строки.
// Каждое изменение через batch-update создает новую запись, старые не трогаем.
type RowData struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	RowID       uint       `json:"row_id" gorm:"index"`
	VersionDate *time.Time `json:"version_date"`
	LastUserID  uint       `json:"last_user_id"`
	LastUpdate  time.Time  `json:"last_update"`

	BudgetPart string `json:"budget_part"`

	DivisionID *uint     `json:"-"`
	Division   *Division `json:"division" gorm:"foreignKey:DivisionID"`

	ChapterID *uint    `json:"-"`
	Chapter   *Chapter `json:"chapter" gorm:"foreignKey:ChapterID"`

	ParagraphID *uint      `json:"-"`
	Paragraph   *Paragraph `json:"paragraph" gorm:"foreignKey:ParagraphID"`

	FundingSource string `json:"funding_source"`

	ExpenseGroupID *uint         `json:"-"`
	ExpenseGroup   *ExpenseGroup `json:"expense_group" gorm:"foreignKey:ExpenseGroupID"`

	TaskBudgetFullID     *uint `json:"-"`
	TaskBudgetFull       *Task `json:"task_budget_full" gorm:"foreignKey:TaskBudgetFullID"`
	TaskBudgetFunctionID *uint `json:"-"`
	TaskBudgetFunction   *Task `json:"task_budget_function" gorm:"foreignKey:TaskBudgetFunctionID"`

	ProgramProjectName     string `json:"program_project_name"`
	OrganizationalUnitName string `json:"organizational_unit_name"`
	PlanWI                 string `json:"plan_wi"`
	FundDistributor        string `json:"fund_distributor"`
	BudgetCode             string `json:"budget_code"`
	TaskName               string `json:"task_name"`
	TaskJustification      string `json:"task_justification"`
	ExpenditurePurpose     string `json:"expenditure_purpose"`

	FinancialNeeds0        float64 `json:"financial_needs_0"`
	ExpenditureLimit0      float64 `json:"expenditure_limit_0"`
	UnallocatedTaskFunds0  float64 `json:"unallocated_task_funds_0"`
	ContractAmount0        float64 `json:"contract_amount_0"`
	ContractNumber0        string  `json:"contract_number_0"`
	FinancialNeeds1        float64 `json:"financial_needs_1"`
	ExpenditureLimit1      float64 `json:"expenditure_limit_1"`
	UnallocatedTaskFunds1  float64 `json:"unallocated_task_funds_1"`
	ContractAmount1        float64 `json:"contract_amount_1"`
	ContractNumber1        string  `json:"contract_number_1"`
	FinancialNeeds2        float64 `json:"financial_needs_2"`
	ExpenditureLimit2      float64 `json:"expenditure_limit_2"`
	UnallocatedTaskFunds2  float64 `json:"unallocated_task_funds_2"`
	ContractAmount2        float64 `json:"contract_amount_2"`
	ContractNumber2        string  `json:"contract_number_2"`
	FinancialNeeds3        float64 `json:"financial_needs_3"`
	ExpenditureLimit3      float64 `json:"expenditure_limit_3"`
	UnallocatedTaskFunds3  float64 `json:"unallocated_task_funds_3"`
	ContractAmount3        float64 `json:"contract_amount_3"`
	ContractNumber3        string  `json:"contract_number_3"`

	SubsidyAgreementParty string `json:"subsidy_agreement_party"`
	LegalBasisForSubsidy  string `json:"legal_basis_for_subsidy"`

	Notes string `json:"notes"`

	// Произвольные дополнительные данные; в плоские значения таблицы не входят
	Additionals json.RawMessage `json:"additionals,omitempty" gorm:"type:jsonb"`
}
