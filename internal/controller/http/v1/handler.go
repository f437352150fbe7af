package v1

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/kurochkinivan/article_cleanup/internal/cleanup"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

type Cleaner interface {
	Load(ctx context.Context, r io.Reader) (*domain.Table, error)
	Inspect(ctx context.Context, table *domain.Table) *domain.Inspection
	Clean(ctx context.Context, table *domain.Table) (*domain.Outcome, error)
	Preview(table *domain.Table) *domain.Table
	ExportCSV(w io.Writer, outcome *domain.Outcome) error
	ExportWorkbook(w io.Writer, outcome *domain.Outcome) error
	ExportStatusCounts(w io.Writer, table *domain.Table) error
	Report(ctx context.Context, w io.Writer, sourceFile string, source *domain.Table, outcome *domain.Outcome) error
}

// CleanupHandler serves the stateless JSON API: every request carries its
// own table.
type CleanupHandler struct {
	log     *slog.Logger
	cleaner Cleaner
}

func NewCleanupHandler(log *slog.Logger, cleaner Cleaner) *CleanupHandler {
	return &CleanupHandler{
		log:     log,
		cleaner: cleaner,
	}
}

type InspectResponse struct {
	Columns      []string             `json:"columns"`
	Rows         int                  `json:"rows"`
	StatusColumn string               `json:"status_column,omitempty"`
	StatusCounts []domain.StatusCount `json:"status_counts"`
	Preview      TablePreview         `json:"preview"`
}

type CleanResponse struct {
	Column     string            `json:"column"`
	Stats      domain.Stats      `json:"stats"`
	Statistics []domain.StatItem `json:"statistics"`
	Preview    TablePreview      `json:"preview"`
}

// TablePreview holds rows as arrays so cells keep the column order.
type TablePreview struct {
	Columns []string     `json:"columns"`
	Rows    []domain.Row `json:"rows"`
}

func (h *CleanupHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	table, err := h.loadTable(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	inspection := h.cleaner.Inspect(r.Context(), table)

	counts := inspection.StatusCounts
	if counts == nil {
		counts = []domain.StatusCount{}
	}

	render.JSON(w, r, InspectResponse{
		Columns:      inspection.Columns,
		Rows:         inspection.Rows,
		StatusColumn: inspection.StatusColumn,
		StatusCounts: counts,
		Preview:      tablePreview(inspection.Preview),
	})
}

func (h *CleanupHandler) Clean(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.clean(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, CleanResponse{
		Column:     outcome.Column,
		Stats:      outcome.Stats,
		Statistics: outcome.Stats.Items(),
		Preview:    tablePreview(h.cleaner.Preview(outcome.Table)),
	})
}

func (h *CleanupHandler) CleanCSV(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.clean(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.cleaner.ExportCSV(&buf, outcome); err != nil {
		h.renderError(w, r, err)
		return
	}

	writeAttachment(w, cleanup.ExportFilename, contentTypeCSV, buf.Bytes())
}

func (h *CleanupHandler) clean(r *http.Request) (*domain.Outcome, error) {
	table, err := h.loadTable(r)
	if err != nil {
		return nil, err
	}

	return h.cleaner.Clean(r.Context(), table)
}

func (h *CleanupHandler) loadTable(r *http.Request) (*domain.Table, error) {
	up, err := extractUpload(r)
	if err != nil {
		return nil, err
	}
	defer up.close()

	return h.cleaner.Load(r.Context(), up.body)
}

func (h *CleanupHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed", slog.String("err", err.Error()))
	}

	render.Status(r, code)
	render.JSON(w, r, errorResponse(err))
}

func tablePreview(table *domain.Table) TablePreview {
	rows := table.Rows
	if rows == nil {
		rows = []domain.Row{}
	}

	return TablePreview{
		Columns: table.Columns,
		Rows:    rows,
	}
}
