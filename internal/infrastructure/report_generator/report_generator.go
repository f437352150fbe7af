package report_generator

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

const (
	title        = "Article Status Cleanup"
	labelColSize = 8
	valueColSize = 4
	rowHeight    = 7
)

var (
	titleProps   = props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}
	headingProps = props.Text{Size: 12, Style: fontstyle.Bold, Top: 3}
	cellProps    = props.Text{Size: 10}
	valueProps   = props.Text{Size: 10, Align: align.Right}
)

type ReportGenerator struct{}

func New() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateReport renders the cleanup summary as a PDF document.
func (g *ReportGenerator) GenerateReport(w io.Writer, report *domain.Report) error {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(text.NewRow(12, title, titleProps))
	m.AddRows(
		text.NewRow(rowHeight, "Source file: "+report.SourceFile, cellProps),
		text.NewRow(rowHeight, "Status column: "+report.Column, cellProps),
		text.NewRow(rowHeight, "Generated at: "+report.GeneratedAt.Format(time.DateTime), cellProps),
	)

	m.AddRows(text.NewRow(10, "Statistics", headingProps))
	for _, item := range report.Stats.Items() {
		m.AddRows(valueRow(item.Label, item.Value))
	}

	m.AddRows(text.NewRow(10, "Status counts", headingProps))
	if len(report.StatusCounts) == 0 {
		m.AddRows(text.NewRow(rowHeight, "No status values", cellProps))
	}
	for _, c := range report.StatusCounts {
		m.AddRows(valueRow(c.Status, c.Count))
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate document: %w", err)
	}

	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

func valueRow(label string, value int) core.Row {
	return row.New(rowHeight).Add(
		text.NewCol(labelColSize, label, cellProps),
		text.NewCol(valueColSize, strconv.Itoa(value), valueProps),
	)
}
