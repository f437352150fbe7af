package v1

import (
	"errors"
	"net/http"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

type ErrorResponse struct {
	Error            string   `json:"error"`
	AvailableColumns []string `json:"available_columns,omitempty"`
}

func statusCode(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrStatusColumnNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTable),
		errors.Is(err, errEmptyBody),
		errors.Is(err, errFilePartRequired),
		errors.Is(err, errInvalidMultipart):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var notFound *domain.ColumnNotFoundError
	if errors.As(err, &notFound) {
		resp.AvailableColumns = notFound.Available
	}

	return resp
}
