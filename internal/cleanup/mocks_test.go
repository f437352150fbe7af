package cleanup_test

import (
	"io"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockReportGenerator struct {
	mock.Mock
}

func (m *mockReportGenerator) GenerateReport(w io.Writer, report *domain.Report) error {
	return m.Called(w, report).Error(0)
}

type mockWorkbookExporter struct {
	mock.Mock
}

func (m *mockWorkbookExporter) ExportWorkbook(w io.Writer, sheet string, table *domain.Table) error {
	return m.Called(w, sheet, table).Error(0)
}

type mockMetricsRecorder struct {
	mock.Mock
}

func (m *mockMetricsRecorder) UploadProcessed(ok bool) {
	m.Called(ok)
}

func (m *mockMetricsRecorder) CleanupProcessed(stats domain.Stats) {
	m.Called(stats)
}

func (m *mockMetricsRecorder) CleanupFailed(reason string) {
	m.Called(reason)
}
