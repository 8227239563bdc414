package worksheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellValid(t *testing.T) {
	tests := []struct {
		name  string
		col   int
		value string
		want  bool
	}{
		{"empty always valid", ColBudgetPart, "", true},
		{"budget part two digits", ColBudgetPart, "01", true},
		{"budget part three digits", ColBudgetPart, "123", false},
		{"budget part letters", ColBudgetPart, "ab", false},
		{"division three digits", ColDivision, "750", true},
		{"division too short", ColDivision, "75", false},
		{"chapter five digits", ColChapter, "75001", true},
		{"chapter four digits", ColChapter, "7500", false},
		{"paragraph four digits", ColParagraph, "4210", true},
		{"paragraph five digits", ColParagraph, "42100", false},
		{"amount integer", ColFinancialNeeds0, "1000", true},
		{"amount two decimals", ColExpenditureLimit2, "1000.55", true},
		{"amount one decimal", ColContractAmount1, "12.5", true},
		{"amount three decimals", ColFinancialNeeds3, "12.555", false},
		{"amount comma separator", ColUnallocatedTaskFunds0, "12,50", false},
		{"amount negative", ColFinancialNeeds0, "-5", false},
		{"amount text", ColContractAmount3, "nie dotyczy", false},
		{"free text column unrestricted", ColTaskName, "Zakup sprzętu %$#", true},
		{"contract number unrestricted", ColContractNumber0, "UM/2025/17", true},
		{"notes unrestricted", ColNotes, "dowolny tekst", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellValid(tt.col, tt.value))
		})
	}
}

func TestColumnCountMatchesHeaderOrder(t *testing.T) {
	// Последняя колонка + 1 == число колонок листа
	assert.Equal(t, ColNotes+1, int(ColumnCount))
	assert.Equal(t, 39, int(ColumnCount))
}
