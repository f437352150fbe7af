package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStatusColumnNotFound = errors.New("could not find a column containing submission status")
	ErrInvalidTable         = errors.New("invalid table")
	ErrSessionNotFound      = errors.New("session not found")
)

// ColumnNotFoundError is returned when no column name matches the status
// column heuristic. It lists every column of the table.
type ColumnNotFoundError struct {
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%s, available columns: [%s]", ErrStatusColumnNotFound, strings.Join(e.Available, ", "))
}

func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrStatusColumnNotFound
}
