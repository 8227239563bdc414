package worksheet

import "sort"

// DisplayRow — представление для таблицы: последняя версия строки и ее
// история по убыванию даты. Вычисляется заново при каждом обращении и
// не мутирует рабочий набор.
type DisplayRow struct {
	Row     *BudgetRow
	History []*BudgetRow
}

// groupRows разбивает плоский список по ключам идентичности с сохранением
// порядка первого появления. Внутри группы версии сортируются по убыванию
// versionDate; версии без даты уходят в конец, равные даты сохраняют
// исходный порядок (сортировка стабильная).
func groupRows(rows []*BudgetRow) []DisplayRow {
	groups := make(map[string][]*BudgetRow)
	order := make([]string, 0, len(rows))

	for _, r := range rows {
		if _, ok := groups[r.key]; !ok {
			order = append(order, r.key)
		}
		groups[r.key] = append(groups[r.key], r)
	}

	out := make([]DisplayRow, 0, len(order))
	for _, key := range order {
		versions := groups[key]
		if len(versions) == 1 {
			out = append(out, DisplayRow{Row: versions[0], History: []*BudgetRow{}})
			continue
		}

		sorted := make([]*BudgetRow, len(versions))
		copy(sorted, versions)
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].VersionDate, sorted[j].VersionDate
			switch {
			case a == nil && b == nil:
				return false
			case a == nil:
				return false // без даты — в конец
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})

		out = append(out, DisplayRow{Row: sorted[0], History: sorted[1:]})
	}
	return out
}
