package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

const (
	DefaultPreviewRows = 5
	WorkbookSheet      = "Articles"
)

const (
	failureNoStatusColumn = "no_status_column"
	failureExport         = "export"
)

// Service runs the read, resolve, filter and export steps for every
// transport. It holds no per-table state.
type Service struct {
	log         *slog.Logger
	parser      *Parser
	previewRows int
	reports     ReportGenerator
	workbooks   WorkbookExporter
	metrics     MetricsRecorder
}

func NewService(
	log *slog.Logger,
	previewRows int,
	reports ReportGenerator,
	workbooks WorkbookExporter,
	metrics MetricsRecorder,
) *Service {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}

	return &Service{
		log:         log,
		parser:      NewParser(log),
		previewRows: previewRows,
		reports:     reports,
		workbooks:   workbooks,
		metrics:     metrics,
	}
}

// Load parses an uploaded file.
func (s *Service) Load(ctx context.Context, r io.Reader) (*domain.Table, error) {
	table, err := s.parser.Parse(r)
	s.metrics.UploadProcessed(err == nil)
	if err != nil {
		s.log.WarnContext(ctx, "failed to read uploaded table", slog.String("err", err.Error()))
		return nil, err
	}

	s.log.InfoContext(ctx, "table loaded",
		slog.Int("rows_count", table.Len()),
		slog.Int("columns_count", len(table.Columns)),
	)

	return table, nil
}

// Inspect describes the table as shown right after upload. An unresolvable
// status column leaves StatusColumn empty.
func (s *Service) Inspect(ctx context.Context, table *domain.Table) *domain.Inspection {
	inspection := &domain.Inspection{
		Columns: table.Columns,
		Rows:    table.Len(),
		Preview: table.Head(s.previewRows),
	}

	column, err := ResolveStatusColumn(table.Columns)
	if err != nil {
		s.log.DebugContext(ctx, "status column not resolved during inspection")
		return inspection
	}

	inspection.StatusColumn = column
	inspection.StatusCounts = CountStatuses(table, column)

	return inspection
}

// Clean resolves the status column and filters the table by it. The filter
// is not run when resolution fails.
func (s *Service) Clean(ctx context.Context, table *domain.Table) (*domain.Outcome, error) {
	column, err := ResolveStatusColumn(table.Columns)
	if err != nil {
		s.metrics.CleanupFailed(failureNoStatusColumn)
		s.log.WarnContext(ctx, "failed to resolve status column", slog.String("err", err.Error()))
		return nil, err
	}

	s.log.InfoContext(ctx, "using status column", slog.String("column", column))

	outcome := Filter(table, column)
	s.metrics.CleanupProcessed(outcome.Stats)

	s.log.InfoContext(ctx, "table cleaned",
		slog.Int("total_rows", outcome.Stats.Total),
		slog.Int("kept_rows", outcome.Stats.Kept),
		slog.Int("removed_rows", outcome.Stats.Removed),
	)

	return outcome, nil
}

// Preview returns the first rows of a table, as many as configured.
func (s *Service) Preview(table *domain.Table) *domain.Table {
	return table.Head(s.previewRows)
}

func (s *Service) ExportCSV(w io.Writer, outcome *domain.Outcome) error {
	if err := WriteTable(w, outcome.Table); err != nil {
		s.metrics.CleanupFailed(failureExport)
		return fmt.Errorf("failed to export csv: %w", err)
	}

	return nil
}

func (s *Service) ExportWorkbook(w io.Writer, outcome *domain.Outcome) error {
	if err := s.workbooks.ExportWorkbook(w, WorkbookSheet, outcome.Table); err != nil {
		s.metrics.CleanupFailed(failureExport)
		return fmt.Errorf("failed to export workbook: %w", err)
	}

	return nil
}

// ExportStatusCounts writes the status value counts of the original table.
func (s *Service) ExportStatusCounts(w io.Writer, table *domain.Table) error {
	column, err := ResolveStatusColumn(table.Columns)
	if err != nil {
		return err
	}

	return WriteStatusCounts(w, CountStatuses(table, column))
}

// Report writes a summary document of a cleanup of the source table.
func (s *Service) Report(
	ctx context.Context,
	w io.Writer,
	sourceFile string,
	source *domain.Table,
	outcome *domain.Outcome,
) error {
	if outcome == nil {
		return errors.New("no cleanup outcome to report")
	}

	report := &domain.Report{
		SourceFile:   sourceFile,
		Column:       outcome.Column,
		Stats:        outcome.Stats,
		StatusCounts: CountStatuses(source, outcome.Column),
		GeneratedAt:  time.Now(),
	}

	s.log.DebugContext(ctx, "generating report", slog.String("source_file", sourceFile))

	if err := s.reports.GenerateReport(w, report); err != nil {
		s.metrics.CleanupFailed(failureExport)
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return nil
}
