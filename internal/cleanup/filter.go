package cleanup

import (
	"cmp"
	"slices"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

// Mask evaluates Keep for every row of the column.
func Mask(table *domain.Table, column string) []bool {
	idx, ok := table.ColumnIndex(column)

	mask := make([]bool, table.Len())
	if !ok {
		return mask
	}

	for i, row := range table.Rows {
		mask[i] = Keep(row.Get(idx))
	}

	return mask
}

// Filter keeps the rows matching Keep. Stats are derived from the same mask
// as the filtered table.
func Filter(table *domain.Table, column string) *domain.Outcome {
	mask := Mask(table, column)
	filtered := table.Filter(mask)

	return &domain.Outcome{
		Column: column,
		Table:  filtered,
		Stats: domain.Stats{
			Total:   table.Len(),
			Kept:    filtered.Len(),
			Removed: table.Len() - filtered.Len(),
		},
	}
}

// CountStatuses counts non-missing values of the column, most frequent
// first. Ties keep the order of first appearance.
func CountStatuses(table *domain.Table, column string) []domain.StatusCount {
	idx, ok := table.ColumnIndex(column)
	if !ok {
		return nil
	}

	positions := make(map[string]int)
	var counts []domain.StatusCount

	for _, row := range table.Rows {
		value := row.Get(idx)
		if value == "" {
			continue
		}

		pos, seen := positions[value]
		if !seen {
			pos = len(counts)
			positions[value] = pos
			counts = append(counts, domain.StatusCount{Status: value})
		}
		counts[pos].Count++
	}

	slices.SortStableFunc(counts, func(a, b domain.StatusCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return counts
}
