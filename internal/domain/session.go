package domain

import "time"

type Session struct {
	ID        string
	Filename  string
	Table     *Table
	CreatedAt time.Time
	UpdatedAt time.Time
}
