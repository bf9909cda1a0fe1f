package domain

import "time"

// Season is a bounded window during which applications may be created.
type Season struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsOpenAt reports whether date lies strictly inside the season.
func (s *Season) IsOpenAt(date time.Time) bool {
	return s.StartDate.Before(date) && s.EndDate.After(date)
}

// Overlaps reports whether [start, end] intersects the season.
func (s *Season) Overlaps(start, end time.Time) bool {
	return s.StartDate.Before(end) && start.Before(s.EndDate)
}
