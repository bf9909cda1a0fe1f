package domain

import "time"

// ApplicationStatus enumerates lifecycle states for applications.
type ApplicationStatus string

const (
	StatusInProgress         ApplicationStatus = "IN_PROGRESS"
	StatusSubmitted          ApplicationStatus = "SUBMITTED"
	StatusScheduleInterview  ApplicationStatus = "SCHEDULE_INTERVIEW"
	StatusPendingInterview   ApplicationStatus = "PENDING_INTERVIEW"
	StatusCompletedInterview ApplicationStatus = "COMPLETED_INTERVIEW"
	StatusRejected           ApplicationStatus = "REJECTED"
	StatusAccepted           ApplicationStatus = "ACCEPTED"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []ApplicationStatus{
	StatusInProgress,
	StatusSubmitted,
	StatusScheduleInterview,
	StatusPendingInterview,
	StatusCompletedInterview,
	StatusRejected,
	StatusAccepted,
}

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	for _, candidate := range AllStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Terminal reports whether the status carries a final verdict.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusRejected || s == StatusAccepted
}

// Profile is free-form candidate supplied data.
type Profile map[string]any

// Clone returns a shallow copy so callers never share the backing map.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// CriterionScore is a grader's score for one rubric criterion.
type CriterionScore struct {
	Criterion string `json:"criterion"`
	Score     int    `json:"score"`
	Notes     string `json:"notes,omitempty"`
}

// GraderReview is an append-only review record.
type GraderReview struct {
	ID         string           `json:"id"`
	ReviewerID string           `json:"reviewerId"`
	Grader     string           `json:"grader"`
	Notes      string           `json:"notes"`
	Criteria   []CriterionScore `json:"criteria"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Application is the aggregate tracked through the review lifecycle.
type Application struct {
	ID              string
	UserID          string
	SeasonID        string
	SeasonName      string
	Status          ApplicationStatus
	Profile         Profile
	Notes           *string
	Rating          *int
	Availability    []time.Time
	InterviewTime   *time.Time
	InterviewNotes  *string
	InterviewRating *int
	GraderReviews   []GraderReview
	DateSubmitted   *time.Time
	LastUpdated     time.Time
	CreatedAt       time.Time
	Version         int
}

// Interviewed reports whether a scheduled interview has already taken place.
func (a *Application) Interviewed(now time.Time) bool {
	return a.InterviewTime != nil && !a.InterviewTime.After(now)
}

// Clone returns a deep copy of the application.
func (a *Application) Clone() *Application {
	if a == nil {
		return nil
	}
	out := *a
	out.Profile = a.Profile.Clone()
	out.Notes = cloneString(a.Notes)
	out.Rating = cloneInt(a.Rating)
	out.InterviewNotes = cloneString(a.InterviewNotes)
	out.InterviewRating = cloneInt(a.InterviewRating)
	out.InterviewTime = cloneTime(a.InterviewTime)
	out.DateSubmitted = cloneTime(a.DateSubmitted)
	if a.Availability != nil {
		out.Availability = append([]time.Time(nil), a.Availability...)
	}
	if a.GraderReviews != nil {
		out.GraderReviews = make([]GraderReview, len(a.GraderReviews))
		for i, review := range a.GraderReviews {
			review.Criteria = append([]CriterionScore(nil), review.Criteria...)
			out.GraderReviews[i] = review
		}
	}
	return &out
}

// ApplicationDelta is the sanitized set of fields a single mutation writes.
// Nil fields are left untouched.
type ApplicationDelta struct {
	Status             *ApplicationStatus
	Profile            Profile
	Notes              *string
	Rating             *int
	Availability       []time.Time
	InterviewTime      *time.Time
	InterviewNotes     *string
	InterviewRating    *int
	AppendGraderReview *GraderReview
	DateSubmitted      *time.Time
	LastUpdated        time.Time
}

// ApplyTo writes the delta onto app. Grader reviews are appended, never replaced.
func (d ApplicationDelta) ApplyTo(app *Application) {
	if d.Status != nil {
		app.Status = *d.Status
	}
	if d.Profile != nil {
		app.Profile = d.Profile.Clone()
	}
	if d.Notes != nil {
		app.Notes = cloneString(d.Notes)
	}
	if d.Rating != nil {
		app.Rating = cloneInt(d.Rating)
	}
	if d.Availability != nil {
		app.Availability = append([]time.Time(nil), d.Availability...)
	}
	if d.InterviewTime != nil {
		app.InterviewTime = cloneTime(d.InterviewTime)
	}
	if d.InterviewNotes != nil {
		app.InterviewNotes = cloneString(d.InterviewNotes)
	}
	if d.InterviewRating != nil {
		app.InterviewRating = cloneInt(d.InterviewRating)
	}
	if d.AppendGraderReview != nil {
		app.GraderReviews = append(app.GraderReviews, *d.AppendGraderReview)
	}
	if d.DateSubmitted != nil {
		app.DateSubmitted = cloneTime(d.DateSubmitted)
	}
	if !d.LastUpdated.IsZero() {
		app.LastUpdated = d.LastUpdated
	}
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
