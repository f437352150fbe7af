package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kurochkinivan/article_cleanup/internal/cleanup"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

// CleanOptions names the files of a single command line cleanup. Empty
// optional paths are skipped.
type CleanOptions struct {
	Input        string
	Output       string
	Workbook     string
	Report       string
	StatusCounts string
	PreviewRows  int
}

// nopRecorder discards metrics of a one-shot run.
type nopRecorder struct{}

func (nopRecorder) UploadProcessed(bool)          {}
func (nopRecorder) CleanupProcessed(domain.Stats) {}
func (nopRecorder) CleanupFailed(string)          {}

// Clean filters the input file and writes the requested exports. The first
// PreviewRows cleaned rows are logged.
func Clean(ctx context.Context, log *slog.Logger, opts CleanOptions) (*domain.Outcome, error) {
	service := NewService(log, opts.PreviewRows, nopRecorder{})

	table, err := loadFile(ctx, service, opts.Input)
	if err != nil {
		return nil, err
	}

	outcome, err := service.Clean(ctx, table)
	if err != nil {
		return nil, err
	}

	for _, item := range outcome.Stats.Items() {
		log.InfoContext(ctx, item.Label, slog.Int("value", item.Value))
	}

	logPreview(ctx, log, service.Preview(outcome.Table))

	output := opts.Output
	if output == "" {
		output = cleanup.ExportFilename
	}

	exports := []struct {
		path  string
		write func(w io.Writer) error
	}{
		{output, func(w io.Writer) error { return service.ExportCSV(w, outcome) }},
		{opts.Workbook, func(w io.Writer) error { return service.ExportWorkbook(w, outcome) }},
		{opts.Report, func(w io.Writer) error {
			return service.Report(ctx, w, filepath.Base(opts.Input), table, outcome)
		}},
		{opts.StatusCounts, func(w io.Writer) error { return service.ExportStatusCounts(w, table) }},
	}

	for _, export := range exports {
		if export.path == "" {
			continue
		}

		if err := writeFile(export.path, export.write); err != nil {
			return nil, err
		}

		log.InfoContext(ctx, "file written", slog.String("path", export.path))
	}

	return outcome, nil
}

func logPreview(ctx context.Context, log *slog.Logger, preview *domain.Table) {
	for i, row := range preview.Rows {
		cells := make([]any, 0, len(preview.Columns))
		for j, column := range preview.Columns {
			cells = append(cells, slog.String(column, row.Get(j)))
		}

		log.InfoContext(ctx, "cleaned row", slog.Int("n", i+1), slog.Group("row", cells...))
	}
}

func loadFile(ctx context.Context, service *cleanup.Service, path string) (_ *domain.Table, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	return service.Load(ctx, f)
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}

	return nil
}
