package cleanup

import (
	"slices"
	"strings"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

const statusColumnMarker = "submit"

// ResolveStatusColumn returns the first column whose name contains "submit",
// ignoring case. When none does, the error is a *domain.ColumnNotFoundError.
func ResolveStatusColumn(columns []string) (string, error) {
	for _, c := range columns {
		if strings.Contains(strings.ToLower(c), statusColumnMarker) {
			return c, nil
		}
	}

	return "", &domain.ColumnNotFoundError{Available: slices.Clone(columns)}
}
