package cleanup_test

import (
	"testing"

	"github.com/kurochkinivan/article_cleanup/internal/cleanup"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusColumn = "Submission Status"

func articlesTable(statuses ...string) *domain.Table {
	rows := make([]domain.Row, 0, len(statuses))
	for i, status := range statuses {
		rows = append(rows, domain.Row{string(rune('A' + i)), status, ""})
	}

	return domain.NewTable([]string{"Title", statusColumn, "Notes"}, rows...)
}

func TestFilter_KeepsReviewRowsInOrder(t *testing.T) {
	t.Parallel()

	table := articlesTable("New Article", "Completed", "Submitted, needs review")

	outcome := cleanup.Filter(table, statusColumn)

	require.Equal(t, statusColumn, outcome.Column)
	require.Equal(t, table.Columns, outcome.Table.Columns)
	require.Len(t, outcome.Table.Rows, 2)
	assert.Equal(t, "A", outcome.Table.Rows[0][0])
	assert.Equal(t, "C", outcome.Table.Rows[1][0])
	assert.Equal(t, domain.Stats{Total: 3, Kept: 2, Removed: 1}, outcome.Stats)
}

func TestFilter_MissingStatusesRemoved(t *testing.T) {
	t.Parallel()

	table := articlesTable("", "", "needs review")

	outcome := cleanup.Filter(table, statusColumn)

	assert.Equal(t, domain.Stats{Total: 3, Kept: 1, Removed: 2}, outcome.Stats)
}

func TestFilter_CountsAddUp(t *testing.T) {
	t.Parallel()

	tables := []*domain.Table{
		articlesTable(),
		articlesTable("Completed", "Submitted", ""),
		articlesTable("New Article", "needs review", "Completed - needs review later"),
		articlesTable("New Article", "Completed", "", "Submitted", "needs review, Completed", "In Progress"),
	}

	for _, table := range tables {
		outcome := cleanup.Filter(table, statusColumn)

		assert.Equal(t, table.Len(), outcome.Stats.Total)
		assert.Equal(t, outcome.Stats.Total, outcome.Stats.Kept+outcome.Stats.Removed)
		assert.Equal(t, outcome.Stats.Kept, outcome.Table.Len())
	}
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	table := articlesTable("New Article", "Completed", "needs review", "Submitted", "Completed - needs review later")

	once := cleanup.Filter(table, statusColumn)
	twice := cleanup.Filter(once.Table, statusColumn)

	assert.Equal(t, once.Table, twice.Table)
	assert.Zero(t, twice.Stats.Removed)
}

func TestFilter_CellsUntouched(t *testing.T) {
	t.Parallel()

	table := domain.NewTable(
		[]string{"Title", statusColumn},
		domain.Row{"  spaced  ", "NEW ARTICLE"},
	)

	outcome := cleanup.Filter(table, statusColumn)

	require.Len(t, outcome.Table.Rows, 1)
	assert.Equal(t, domain.Row{"  spaced  ", "NEW ARTICLE"}, outcome.Table.Rows[0])
}

func TestCountStatuses(t *testing.T) {
	t.Parallel()

	table := articlesTable("Completed", "New Article", "", "New Article", "Completed", "Submitted", "New Article")

	counts := cleanup.CountStatuses(table, statusColumn)

	assert.Equal(t, []domain.StatusCount{
		{Status: "New Article", Count: 3},
		{Status: "Completed", Count: 2},
		{Status: "Submitted", Count: 1},
	}, counts)
}

func TestCountStatuses_UnknownColumn(t *testing.T) {
	t.Parallel()

	assert.Nil(t, cleanup.CountStatuses(articlesTable("New Article"), "Status"))
}
