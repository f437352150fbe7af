package cleanup_test

import (
	"testing"

	"github.com/kurochkinivan/article_cleanup/internal/cleanup"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStatusColumn_Found(t *testing.T) {
	t.Parallel()

	column, err := cleanup.ResolveStatusColumn([]string{"Title", "Submission Status", "Notes"})
	require.NoError(t, err)
	assert.Equal(t, "Submission Status", column)
}

func TestResolveStatusColumn_FirstMatchWins(t *testing.T) {
	t.Parallel()

	column, err := cleanup.ResolveStatusColumn([]string{"Title", "SUBMITTED BY", "Submission Status"})
	require.NoError(t, err)
	assert.Equal(t, "SUBMITTED BY", column)
}

func TestResolveStatusColumn_NotFound(t *testing.T) {
	t.Parallel()

	columns := []string{"Title", "Notes"}

	column, err := cleanup.ResolveStatusColumn(columns)
	require.ErrorIs(t, err, domain.ErrStatusColumnNotFound)
	assert.Empty(t, column)

	var notFound *domain.ColumnNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, columns, notFound.Available)
	assert.Contains(t, err.Error(), "Title, Notes")
}

func TestResolveStatusColumn_NoColumns(t *testing.T) {
	t.Parallel()

	_, err := cleanup.ResolveStatusColumn(nil)
	require.ErrorIs(t, err, domain.ErrStatusColumnNotFound)
}
