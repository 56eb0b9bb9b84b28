package domain

import "time"

// Holiday represents a public holiday on which weekend pricing applies
type Holiday struct {
	ID        int64
	Date      time.Time // Calendar date, time part ignored
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
