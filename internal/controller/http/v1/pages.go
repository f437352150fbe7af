package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/kurochkinivan/article_cleanup/internal/cleanup"
	"github.com/kurochkinivan/article_cleanup/internal/controller/http/v1/view"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

const (
	sessionCookie = "session_id"

	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"

	workbookFilename     = "articles_to_review.xlsx"
	reportFilename       = "report.pdf"
	statusCountsFilename = "status_counts.csv"
)

type SessionsRepository interface {
	SaveSession(ctx context.Context, session *domain.Session) error
	Session(ctx context.Context, id string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// PagesHandler serves the interactive upload, clean and download cycle.
// The uploaded table is kept per browser session; cleanup outcomes are
// recomputed on every request.
type PagesHandler struct {
	log           *slog.Logger
	cleaner       Cleaner
	sessions      SessionsRepository
	maxUploadSize int64
}

func NewPagesHandler(log *slog.Logger, cleaner Cleaner, sessions SessionsRepository, maxUploadSize int64) *PagesHandler {
	return &PagesHandler{
		log:           log,
		cleaner:       cleaner,
		sessions:      sessions,
		maxUploadSize: maxUploadSize,
	}
}

func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		h.renderPage(w, r, http.StatusOK, view.Page{})
		return
	}

	h.renderPage(w, r, http.StatusOK, h.uploadedPage(r.Context(), session))
}

func (h *PagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id := h.sessionID(w, r)

	table, filename, err := h.readUpload(r)
	if err != nil {
		if delErr := h.sessions.DeleteSession(r.Context(), id); delErr != nil {
			h.log.ErrorContext(r.Context(), "failed to drop session table", slog.String("err", delErr.Error()))
		}

		h.renderPage(w, r, statusCode(err), view.Page{
			Error: fmt.Sprintf("Error reading the file: %s", err),
		})
		return
	}

	err = h.sessions.SaveSession(r.Context(), &domain.Session{
		ID:       id,
		Filename: filename,
		Table:    table,
	})
	if err != nil {
		h.renderPage(w, r, http.StatusInternalServerError, view.Page{
			Error: fmt.Sprintf("An error occurred: %s", err),
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PagesHandler) Clean(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		h.renderPage(w, r, http.StatusNotFound, view.Page{
			Error: "Upload a CSV file before cleaning.",
		})
		return
	}

	data := h.uploadedPage(r.Context(), session)

	outcome, err := h.clean(r.Context(), session.Table)
	if err != nil {
		if errors.Is(err, domain.ErrStatusColumnNotFound) {
			data.Error = domain.ErrStatusColumnNotFound.Error()
		} else {
			h.log.ErrorContext(r.Context(), "failed to clean table", slog.String("err", err.Error()))
			data.Error = fmt.Sprintf("An error occurred: %s", err)
		}

		h.renderPage(w, r, statusCode(err), data)
		return
	}

	data.Outcome = outcome
	data.CleanedPreview = h.cleaner.Preview(outcome.Table)

	h.renderPage(w, r, http.StatusOK, data)
}

// CSRFError renders the page for a form post rejected by the anti-forgery
// check. The form body is parsed before the check, so an oversized upload
// surfaces here too.
func (h *PagesHandler) CSRFError(w http.ResponseWriter, r *http.Request) {
	h.log.WarnContext(r.Context(), "form post rejected", slog.Any("err", csrf.FailureReason(r)))

	if h.maxUploadSize > 0 && r.ContentLength > h.maxUploadSize {
		h.renderPage(w, r, http.StatusRequestEntityTooLarge, view.Page{
			Error: fmt.Sprintf("Error reading the file: larger than %d bytes", h.maxUploadSize),
		})
		return
	}

	h.renderPage(w, r, http.StatusForbidden, view.Page{
		Error: "The form has expired, reload the page and try again.",
	})
}

func (h *PagesHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	session, err := h.session(r)
	if err != nil {
		http.Error(w, "no uploaded table, upload a CSV file first", http.StatusNotFound)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)

	switch name {
	case cleanup.ExportFilename:
		contentType = contentTypeCSV
		err = h.withOutcome(r, session, func(outcome *domain.Outcome) error {
			return h.cleaner.ExportCSV(&buf, outcome)
		})
	case workbookFilename:
		contentType = contentTypeXLSX
		err = h.withOutcome(r, session, func(outcome *domain.Outcome) error {
			return h.cleaner.ExportWorkbook(&buf, outcome)
		})
	case reportFilename:
		contentType = contentTypePDF
		err = h.withOutcome(r, session, func(outcome *domain.Outcome) error {
			return h.cleaner.Report(r.Context(), &buf, session.Filename, session.Table, outcome)
		})
	case statusCountsFilename:
		contentType = contentTypeCSV
		err = h.cleaner.ExportStatusCounts(&buf, session.Table)
	default:
		http.NotFound(w, r)
		return
	}

	if err != nil {
		code := statusCode(err)
		if code == http.StatusInternalServerError {
			h.log.ErrorContext(r.Context(), "failed to prepare download",
				slog.String("name", name),
				slog.String("err", err.Error()),
			)
		}

		http.Error(w, err.Error(), code)
		return
	}

	writeAttachment(w, name, contentType, buf.Bytes())
}

func (h *PagesHandler) withOutcome(r *http.Request, session *domain.Session, fn func(*domain.Outcome) error) error {
	outcome, err := h.clean(r.Context(), session.Table)
	if err != nil {
		return err
	}

	return fn(outcome)
}

// clean runs the cleanup and turns a panic into an error, so the page can
// still show the columns of the uploaded table.
func (h *PagesHandler) clean(ctx context.Context, table *domain.Table) (outcome *domain.Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unexpected failure while cleaning: %v", p)
		}
	}()

	return h.cleaner.Clean(ctx, table)
}

func (h *PagesHandler) readUpload(r *http.Request) (*domain.Table, string, error) {
	up, err := extractUpload(r)
	if err != nil {
		return nil, "", err
	}
	defer up.close()

	table, err := h.cleaner.Load(r.Context(), up.body)
	if err != nil {
		return nil, "", err
	}

	return table, up.filename, nil
}

func (h *PagesHandler) uploadedPage(ctx context.Context, session *domain.Session) view.Page {
	return view.Page{
		Filename:   session.Filename,
		Columns:    session.Table.Columns,
		Inspection: h.cleaner.Inspect(ctx, session.Table),
	}
}

func (h *PagesHandler) session(r *http.Request) (*domain.Session, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	return h.sessions.Session(r.Context(), cookie.Value)
}

// sessionID returns the ID from the session cookie, issuing a new one when
// the request has none.
func (h *PagesHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

func (h *PagesHandler) renderPage(w http.ResponseWriter, r *http.Request, code int, page view.Page) {
	page.CSRFToken = csrf.Token(r)

	if err := renderHTTP(r.Context(), w, code, view.Index(page)); err != nil {
		h.log.ErrorContext(r.Context(), "failed to render page", slog.String("err", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func renderHTTP(ctx context.Context, w http.ResponseWriter, code int, t templ.Component) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := t.Render(ctx, buf); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err := io.Copy(w, buf)

	return err
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = io.Copy(w, bytes.NewReader(data))
}
