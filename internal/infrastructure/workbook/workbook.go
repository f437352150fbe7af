package workbook

import (
	"errors"
	"fmt"
	"io"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
	"github.com/xuri/excelize/v2"
)

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportWorkbook writes the table to a single sheet workbook: header in the
// first row, cells as text.
func (e *Exporter) ExportWorkbook(w io.Writer, sheet string, table *domain.Table) (err error) {
	f := excelize.NewFile()
	defer func() { err = errors.Join(err, f.Close()) }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("failed to write row #%d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func setRow(f *excelize.File, sheet string, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}

	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}

	return f.SetSheetRow(sheet, cell, &cells)
}
