package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kokolodziejska/zagrane/models"
)

func addRowWithVersions(t *testing.T, db *gorm.DB, dt models.DepartmentTable, datas ...models.RowData) models.Row {
	t.Helper()

	row := models.Row{DepartmentTableID: dt.ID}
	require.NoError(t, db.Create(&row).Error)
	for i := range datas {
		datas[i].RowID = row.ID
		require.NoError(t, db.Create(&datas[i]).Error)
	}
	return row
}

func datePtr(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

// seedLimitsTable: dwa wydziały; строка IT имеет две версии, считаться
// должна только последняя.
func seedLimitsTable(t *testing.T, db *gorm.DB) models.Table {
	t.Helper()

	table, it := seedTable(t, db, "Wydział IT")
	hr := addDepartmentTable(t, db, table, "Wydział Kadr")

	addRowWithVersions(t, db, it,
		models.RowData{VersionDate: datePtr(2026, 1, 10), FinancialNeeds0: 999, ExpenditureLimit0: 999},
		models.RowData{VersionDate: datePtr(2026, 3, 5), FinancialNeeds0: 100, ExpenditureLimit0: 80},
	)
	addRowWithVersions(t, db, it,
		models.RowData{VersionDate: datePtr(2026, 2, 1), FinancialNeeds0: 20, ExpenditureLimit0: 20},
	)
	addRowWithVersions(t, db, hr,
		models.RowData{VersionDate: datePtr(2026, 2, 2), FinancialNeeds0: 50, ExpenditureLimit0: 60},
	)
	return table
}

func TestLatestVersionPrefersDatedSnapshots(t *testing.T) {
	undated := models.RowData{TaskName: "bez daty"}
	older := models.RowData{VersionDate: datePtr(2026, 1, 1), TaskName: "stara"}
	newer := models.RowData{VersionDate: datePtr(2026, 3, 1), TaskName: "nowa"}

	got := latestVersion([]models.RowData{undated, older, newer})
	require.NotNil(t, got)
	assert.Equal(t, "nowa", got.TaskName)

	// Wyłącznie wersje bez daty: берется первая
	got = latestVersion([]models.RowData{undated})
	require.NotNil(t, got)
	assert.Equal(t, "bez daty", got.TaskName)

	assert.Nil(t, latestVersion(nil))
}

func TestGetNeedsPerDepartment(t *testing.T) {
	db := setupTestDB(t)
	table := seedLimitsTable(t, db)

	r := testRouter()
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tables/%d/get_needs_per_department", table.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, map[string]float64{
		"Wydział IT":   120,
		"Wydział Kadr": 50,
	}, got)
}

func TestGetLimitsPerDepartment(t *testing.T) {
	db := setupTestDB(t)
	table := seedLimitsTable(t, db)

	r := testRouter()
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tables/%d/get_limits_per_department", table.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, map[string]float64{
		"Wydział IT":   100,
		"Wydział Kadr": 60,
	}, got)
}

func TestGetTotalBudget(t *testing.T) {
	db := setupTestDB(t)
	table := seedLimitsTable(t, db)

	r := testRouter()
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tables/%d/get_total_budget", table.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 5000.0, got)

	w = doJSON(t, r, http.MethodGet, "/api/tables/777/get_total_budget", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLimitsSummary(t *testing.T) {
	db := setupTestDB(t)
	table := seedLimitsTable(t, db)

	r := testRouter()
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tables/%d/limits_summary", table.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Rows        []limitsSummaryRow `json:"rows"`
		TotalBudget float64            `json:"totalBudget"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, 5000.0, got.TotalBudget)
	require.Len(t, got.Rows, 2)

	byDept := make(map[string]limitsSummaryRow)
	for _, row := range got.Rows {
		byDept[row.Department] = row
	}

	it := byDept["Wydział IT"]
	assert.Equal(t, 120.0, it.Needs)
	assert.Equal(t, 100.0, it.Assigned)
	assert.Equal(t, 20.0, it.Difference)

	hr := byDept["Wydział Kadr"]
	assert.Equal(t, 50.0, hr.Needs)
	assert.Equal(t, 60.0, hr.Assigned)
	assert.Equal(t, -10.0, hr.Difference)
}
