package app_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kurochkinivan/article_cleanup/internal/app"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = "\ufeffTitle,Submission Status\n" +
	"A,New Article\n" +
	"B,Completed\n" +
	"C,needs review\n"

func TestClean(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "sheet.csv")
	require.NoError(t, os.WriteFile(in, []byte(input), 0o600))

	opts := app.CleanOptions{
		Input:        in,
		Output:       filepath.Join(dir, "articles_to_review.csv"),
		Workbook:     filepath.Join(dir, "articles_to_review.xlsx"),
		Report:       filepath.Join(dir, "report.pdf"),
		StatusCounts: filepath.Join(dir, "status_counts.csv"),
	}

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	outcome, err := app.Clean(context.Background(), log, opts)
	require.NoError(t, err)

	assert.Equal(t, domain.Stats{Total: 3, Kept: 2, Removed: 1}, outcome.Stats)

	cleaned, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Equal(t, "Title,Submission Status\nA,New Article\nC,needs review\n", string(cleaned))

	counts, err := os.ReadFile(opts.StatusCounts)
	require.NoError(t, err)
	assert.Equal(t, "status,count\nNew Article,1\nCompleted,1\nneeds review,1\n", string(counts))

	report, err := os.ReadFile(opts.Report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(report, []byte("%PDF")))

	info, err := os.Stat(opts.Workbook)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	assert.Contains(t, logs.String(), `msg="cleaned row" n=1 row.Title=A "row.Submission Status"="New Article"`)
	assert.Contains(t, logs.String(), `msg="cleaned row" n=2 row.Title=C`)
}

func TestClean_PreviewRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "sheet.csv")
	require.NoError(t, os.WriteFile(in, []byte(input), 0o600))

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	_, err := app.Clean(context.Background(), log, app.CleanOptions{
		Input:       in,
		Output:      filepath.Join(dir, "out.csv"),
		PreviewRows: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(logs.String(), `msg="cleaned row"`))
}

func TestClean_NoStatusColumn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "sheet.csv")
	require.NoError(t, os.WriteFile(in, []byte("Title,State\nA,New Article\n"), 0o600))

	out := filepath.Join(dir, "out.csv")
	_, err := app.Clean(context.Background(), slog.New(slog.DiscardHandler), app.CleanOptions{
		Input:  in,
		Output: out,
	})

	var notFound *domain.ColumnNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"Title", "State"}, notFound.Available)

	_, err = os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClean_MissingInput(t *testing.T) {
	t.Parallel()

	_, err := app.Clean(context.Background(), slog.New(slog.DiscardHandler), app.CleanOptions{
		Input: filepath.Join(t.TempDir(), "missing.csv"),
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}
