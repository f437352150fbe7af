package domain

const (
	StatTotalRows   = "Total Rows"
	StatRowsKept    = "Rows Kept (New Articles + Needs Review)"
	StatRowsRemoved = "Other Rows Removed"
)

// Outcome is the result of filtering a table by its status column.
type Outcome struct {
	Column string
	Table  *Table
	Stats  Stats
}

type Stats struct {
	Total   int `csv:"total"   json:"total"`
	Kept    int `csv:"kept"    json:"kept"`
	Removed int `csv:"removed" json:"removed"`
}

type StatItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Items returns the statistics in display order.
func (s Stats) Items() []StatItem {
	return []StatItem{
		{Label: StatTotalRows, Value: s.Total},
		{Label: StatRowsKept, Value: s.Kept},
		{Label: StatRowsRemoved, Value: s.Removed},
	}
}

type StatusCount struct {
	Status string `csv:"status" json:"status"`
	Count  int    `csv:"count"  json:"count"`
}

// Inspection describes a freshly uploaded table.
type Inspection struct {
	Columns      []string
	Rows         int
	Preview      *Table
	StatusColumn string // empty when no column could be resolved
	StatusCounts []StatusCount
}
