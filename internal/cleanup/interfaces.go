package cleanup

import (
	"io"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

type ReportGenerator interface {
	GenerateReport(w io.Writer, report *domain.Report) error
}

type WorkbookExporter interface {
	ExportWorkbook(w io.Writer, sheet string, table *domain.Table) error
}

type MetricsRecorder interface {
	UploadProcessed(ok bool)
	CleanupProcessed(stats domain.Stats)
	CleanupFailed(reason string)
}
