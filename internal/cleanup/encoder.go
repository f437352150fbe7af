package cleanup

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

// ExportFilename is the name under which cleaned tables are offered.
const ExportFilename = "articles_to_review.csv"

// WriteTable writes the header and every row of the table, without an index
// column.
func WriteTable(w io.Writer, table *domain.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row #%d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	return nil
}

// WriteStatusCounts writes the counts as a two column status,count table.
func WriteStatusCounts(w io.Writer, counts []domain.StatusCount) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(domain.StatusCount{}); err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}

	if len(counts) > 0 {
		if err := enc.Encode(counts); err != nil {
			return fmt.Errorf("failed to encode status counts: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush status counts: %w", err)
	}

	return nil
}
