package apiclient

import "encoding/json"

// Справочники классификации.

type Division struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

type Chapter struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

type ExpenseGroup struct {
	ID         int64  `json:"id"`
	Definition string `json:"definition"`
}

type Paragraph struct {
	ID           int64         `json:"id"`
	Value        string        `json:"value"`
	ExpenseGroup *ExpenseGroup `json:"expense_group"`
}

type TaskRef struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// TableData — вложенный ответ GET /api/tables/{id}:
// таблица -> подтаблицы подразделений -> строки -> версии строк.

type TableData struct {
	ID               int64                 `json:"id"`
	DepartmentTables []DepartmentTableData `json:"department_tables"`
}

type DepartmentTableData struct {
	ID   int64     `json:"id"`
	Rows []RowNode `json:"rows"`
}

type RowNode struct {
	ID       int64        `json:"id"`
	RowDatas []RowVersion `json:"row_datas"`
}

// RowVersion — один исторический снимок строки. Отсутствующие поля остаются
// nil и при выравнивании превращаются в пустые строки, а не в ошибку.
// Денежные поля декодируются как json.Number, чтобы не терять исходную запись.
type RowVersion struct {
	RowID       *int64  `json:"row_id"`
	VersionDate *string `json:"version_date"`
	LastUserID  *int64  `json:"last_user_id"`
	LastUpdate  *string `json:"last_update"`

	BudgetPart         *string       `json:"budget_part"`
	Division           *Division     `json:"division"`
	Chapter            *Chapter      `json:"chapter"`
	Paragraph          *Paragraph    `json:"paragraph"`
	FundingSource      *string       `json:"funding_source"`
	ExpenseGroup       *ExpenseGroup `json:"expense_group"`
	TaskBudgetFull     *TaskRef      `json:"task_budget_full"`
	TaskBudgetFunction *TaskRef      `json:"task_budget_function"`

	ProgramProjectName     *string `json:"program_project_name"`
	OrganizationalUnitName *string `json:"organizational_unit_name"`
	PlanWI                 *string `json:"plan_wi"`
	FundDistributor        *string `json:"fund_distributor"`
	BudgetCode             *string `json:"budget_code"`
	TaskName               *string `json:"task_name"`
	TaskJustification      *string `json:"task_justification"`
	ExpenditurePurpose     *string `json:"expenditure_purpose"`

	FinancialNeeds0       json.Number `json:"financial_needs_0"`
	ExpenditureLimit0     json.Number `json:"expenditure_limit_0"`
	UnallocatedTaskFunds0 json.Number `json:"unallocated_task_funds_0"`
	ContractAmount0       json.Number `json:"contract_amount_0"`
	ContractNumber0       *string     `json:"contract_number_0"`

	FinancialNeeds1       json.Number `json:"financial_needs_1"`
	ExpenditureLimit1     json.Number `json:"expenditure_limit_1"`
	UnallocatedTaskFunds1 json.Number `json:"unallocated_task_funds_1"`
	ContractAmount1       json.Number `json:"contract_amount_1"`
	ContractNumber1       *string     `json:"contract_number_1"`

	FinancialNeeds2       json.Number `json:"financial_needs_2"`
	ExpenditureLimit2     json.Number `json:"expenditure_limit_2"`
	UnallocatedTaskFunds2 json.Number `json:"unallocated_task_funds_2"`
	ContractAmount2       json.Number `json:"contract_amount_2"`
	ContractNumber2       *string     `json:"contract_number_2"`

	FinancialNeeds3       json.Number `json:"financial_needs_3"`
	ExpenditureLimit3     json.Number `json:"expenditure_limit_3"`
	UnallocatedTaskFunds3 json.Number `json:"unallocated_task_funds_3"`
	ContractAmount3       json.Number `json:"contract_amount_3"`
	ContractNumber3       *string     `json:"contract_number_3"`

	SubsidyAgreementParty *string `json:"subsidy_agreement_party"`
	LegalBasisForSubsidy  *string `json:"legal_basis_for_subsidy"`
	Notes                 *string `json:"notes"`
}

// ChangeRecord — одно накопленное изменение для batch-update. Для каждой
// тройки (tableId, departmentTableId, rowId) существует не больше одной записи.
type ChangeRecord struct {
	TableID           int64    `json:"tableId"`
	DepartmentTableID *int64   `json:"departmentTableId"`
	RowID             *int64   `json:"rowId"`
	IsDeleted         bool     `json:"isDeleted"`
	Values            []string `json:"values"`
	LastUserID        *int64   `json:"lastUserId"`
	LastUpdate        string   `json:"lastUpdate"`
}
