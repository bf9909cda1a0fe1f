package dto

import "time"

// CreateSeasonRequest wraps the season under "season".
type CreateSeasonRequest struct {
	Season *SeasonPayload `json:"season"`
}

// SeasonPayload carries season fields. Dates are pointers so a missing date
// is distinguishable from the zero time.
type SeasonPayload struct {
	Name      string     `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}
