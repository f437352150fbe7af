package view

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

// CSRFFieldName is the form field carrying the anti-forgery token.
const CSRFFieldName = "csrf_token"

type Page struct {
	CSRFToken      string
	Filename       string
	Error          string
	Columns        []string
	Inspection     *domain.Inspection
	Outcome        *domain.Outcome
	CleanedPreview *domain.Table
}

// printer writes HTML and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) component(ctx context.Context, c templ.Component) {
	if p.err != nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

const head = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>Article Status Cleanup Tool</title>
	<style>
		body { font-family: sans-serif; margin: 2rem auto; max-width: 72rem; }
		table { border-collapse: collapse; margin: 1rem 0; }
		th, td { border: 1px solid #ccc; padding: .25rem .5rem; text-align: left; }
		.error { color: #a00; }
		.success { color: #070; }
		.info { color: #036; }
	</style>
</head>
<body>
<h1>Article Status Cleanup Tool</h1>

<details>
	<summary>How to use this tool</summary>
	<ol>
		<li>Download your sheet as CSV from Google Sheets</li>
		<li>Upload the CSV file here</li>
		<li>Click "Clean Data" to keep "New Article" rows and rows marked as "needs review", and remove other "Completed" and "Submitted" rows</li>
		<li>Download the cleaned CSV</li>
	</ol>
</details>
`

// Index is the single page of the tool. Sections appear as the session
// moves from upload to clean.
func Index(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}

		p.raw(head)

		p.raw(`<form action="/upload" method="post" enctype="multipart/form-data">`)
		p.component(ctx, csrfField(page.CSRFToken))
		p.raw(`<label>Upload your CSV file <input type="file" name="file" accept=".csv,text/csv" required></label>`)
		p.raw(`<button type="submit">Upload</button></form>`)

		if page.Error != "" {
			p.raw(`<p class="error">`)
			p.text(page.Error)
			p.raw(`</p>`)
		}

		if page.Inspection != nil {
			p.component(ctx, uploaded(page))
		}

		if page.Outcome != nil {
			p.component(ctx, cleaned(page.Outcome, page.CleanedPreview))
		}

		if len(page.Columns) > 0 {
			p.component(ctx, columns(page.Columns, page.Error != ""))
		}

		p.raw("</body>\n</html>\n")

		return p.err
	})
}

func uploaded(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		inspection := page.Inspection

		p.raw(`<p class="success">File uploaded successfully: `)
		p.text(page.Filename)
		p.raw(` (` + strconv.Itoa(inspection.Rows) + ` rows)</p>`)

		p.raw(`<h2>Original Data Preview</h2>`)
		p.component(ctx, Table(inspection.Preview))

		if inspection.StatusColumn != "" {
			p.raw(`<p>Current Status Counts for column "`)
			p.text(inspection.StatusColumn)
			p.raw(`":</p><table><tr><th>Status</th><th>Count</th></tr>`)
			for _, c := range inspection.StatusCounts {
				p.raw(`<tr><td>`)
				p.text(c.Status)
				p.raw(`</td><td>` + strconv.Itoa(c.Count) + `</td></tr>`)
			}
			p.raw(`</table><p><a href="/download/status_counts.csv">Download status counts</a></p>`)
		}

		p.raw(`<form action="/clean" method="post">`)
		p.component(ctx, csrfField(page.CSRFToken))
		p.raw(`<button type="submit">Clean Data</button></form>`)

		return p.err
	})
}

func cleaned(outcome *domain.Outcome, preview *domain.Table) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}

		p.raw(`<p class="info">Using column: `)
		p.text(outcome.Column)
		p.raw(`</p><p class="success">Data cleaned successfully!</p><p>Statistics:</p><ul>`)
		for _, item := range outcome.Stats.Items() {
			p.raw(`<li>`)
			p.text(item.Label + ": " + strconv.Itoa(item.Value))
			p.raw(`</li>`)
		}
		p.raw(`</ul>`)

		p.raw(`<h2>Preview of cleaned data (New Articles + Needs Review)</h2>`)
		if preview != nil {
			p.component(ctx, Table(preview))
		}

		p.raw(`<p><a href="/download/articles_to_review.csv">Download cleaned CSV</a> | `)
		p.raw(`<a href="/download/articles_to_review.xlsx">Download as workbook</a> | `)
		p.raw(`<a href="/download/report.pdf">Download report</a></p>`)

		return p.err
	})
}

func columns(names []string, open bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}

		if open {
			p.raw(`<details open>`)
		} else {
			p.raw(`<details>`)
		}
		p.raw(`<summary>View All Available Columns</summary><p>These are all the columns in your CSV file:</p><ul>`)
		for _, name := range names {
			p.raw(`<li>`)
			p.text(name)
			p.raw(`</li>`)
		}
		p.raw(`</ul></details>`)

		return p.err
	})
}

// Table renders a table with a header row.
func Table(table *domain.Table) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}

		p.raw(`<table><tr>`)
		for _, column := range table.Columns {
			p.raw(`<th>`)
			p.text(column)
			p.raw(`</th>`)
		}
		p.raw(`</tr>`)

		for _, row := range table.Rows {
			p.raw(`<tr>`)
			for _, cell := range row {
				p.raw(`<td>`)
				p.text(cell)
				p.raw(`</td>`)
			}
			p.raw(`</tr>`)
		}
		p.raw(`</table>`)

		return p.err
	})
}

func csrfField(token string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}

		p.raw(`<input type="hidden" name="` + CSRFFieldName + `" value="`)
		p.text(token)
		p.raw(`">`)

		return p.err
	})
}
