package domain

import "time"

// Report is the content of a cleanup summary document.
type Report struct {
	SourceFile   string
	Column       string
	Stats        Stats
	StatusCounts []StatusCount
	GeneratedAt  time.Time
}
