package view_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/kurochkinivan/article_cleanup/internal/controller/http/v1/view"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	t.Parallel()

	table := domain.NewTable(
		[]string{"Title", "Status & Notes"},
		domain.Row{"A", `"quoted"`},
	)

	var buf bytes.Buffer
	require.NoError(t, view.Table(table).Render(context.Background(), &buf))

	assert.Equal(t,
		`<table><tr><th>Title</th><th>Status &amp; Notes</th></tr>`+
			`<tr><td>A</td><td>&#34;quoted&#34;</td></tr></table>`,
		buf.String(),
	)
}

func TestIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		page        view.Page
		contains    []string
		notContains []string
	}{
		{
			name:        "empty",
			page:        view.Page{CSRFToken: "tok"},
			contains:    []string{`<input type="hidden" name="csrf_token" value="tok">`, `action="/upload"`},
			notContains: []string{`action="/clean"`, "View All Available Columns", `class="error"`},
		},
		{
			name: "error with columns",
			page: view.Page{
				Error:   "could not find a column containing submission status",
				Columns: []string{"Title", "State"},
			},
			contains: []string{
				`<p class="error">could not find a column containing submission status</p>`,
				"<details open>",
				"<li>State</li>",
			},
		},
		{
			name: "uploaded",
			page: view.Page{
				Filename: "sheet.csv",
				Columns:  []string{"Title", "Submission Status"},
				Inspection: &domain.Inspection{
					Columns:      []string{"Title", "Submission Status"},
					Rows:         1,
					Preview:      domain.NewTable([]string{"Title", "Submission Status"}, domain.Row{"A", "New Article"}),
					StatusColumn: "Submission Status",
					StatusCounts: []domain.StatusCount{{Status: "New Article", Count: 1}},
				},
			},
			contains: []string{
				"File uploaded successfully: sheet.csv (1 rows)",
				"<tr><td>New Article</td><td>1</td></tr>",
				`action="/clean"`,
			},
			notContains: []string{"<details open>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, view.Index(tt.page).Render(context.Background(), &buf))

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}
