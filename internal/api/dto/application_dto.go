package dto

import (
	"time"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/workflow"
)

// ProfileRequest replaces the profile of an in-progress application.
type ProfileRequest struct {
	Profile domain.Profile `json:"profile"`
}

// AvailabilityRequest lists proposed interview slots.
type AvailabilityRequest struct {
	Availability []time.Time `json:"availability"`
}

// ReviewRequest wraps the admin review under "application".
type ReviewRequest struct {
	Application *ReviewPayload `json:"application"`
}

// ReviewPayload is the raw admin review. Fields the targeted transition does
// not permit are dropped by the workflow.
type ReviewPayload struct {
	Status          *domain.ApplicationStatus `json:"status"`
	Notes           *string                   `json:"notes"`
	Rating          *int                      `json:"rating"`
	InterviewTime   *time.Time                `json:"interviewTime"`
	InterviewNotes  *string                   `json:"interviewNotes"`
	InterviewRating *int                      `json:"interviewRating"`
	GraderReview    *GraderReviewPayload      `json:"graderReview"`
}

// GraderReviewPayload is one grader's note and rubric scores.
type GraderReviewPayload struct {
	Grader   string                  `json:"grader"`
	Notes    string                  `json:"notes"`
	Criteria []domain.CriterionScore `json:"criteria"`
}

// ToWorkflow converts the payload for the workflow machine.
func (p *ReviewPayload) ToWorkflow() workflow.ReviewRequest {
	req := workflow.ReviewRequest{
		Status:          p.Status,
		Notes:           p.Notes,
		Rating:          p.Rating,
		InterviewTime:   p.InterviewTime,
		InterviewNotes:  p.InterviewNotes,
		InterviewRating: p.InterviewRating,
	}
	if p.GraderReview != nil {
		req.GraderReview = &workflow.GraderReviewInput{
			Grader:   p.GraderReview.Grader,
			Notes:    p.GraderReview.Notes,
			Criteria: p.GraderReview.Criteria,
		}
	}
	return req
}

// ApplicationResponse is the full projection of an application. Admin-only
// fields are omitted when nil.
type ApplicationResponse struct {
	ID              string                   `json:"id"`
	User            string                   `json:"user"`
	Season          string                   `json:"season"`
	SeasonName      string                   `json:"seasonName"`
	Status          domain.ApplicationStatus `json:"status"`
	Profile         domain.Profile           `json:"profile"`
	Availability    []time.Time              `json:"availability"`
	InterviewTime   *time.Time               `json:"interviewTime"`
	DateSubmitted   *time.Time               `json:"dateSubmitted"`
	LastUpdated     time.Time                `json:"lastUpdated"`
	Notes           *string                  `json:"notes,omitempty"`
	Rating          *int                     `json:"rating,omitempty"`
	InterviewNotes  *string                  `json:"interviewNotes,omitempty"`
	InterviewRating *int                     `json:"interviewRating,omitempty"`
	GraderReviews   []domain.GraderReview    `json:"graderReviews,omitempty"`
}

// ApplicationMeta is the summary projection used by list endpoints.
type ApplicationMeta struct {
	ID            string                   `json:"id"`
	User          string                   `json:"user"`
	Season        string                   `json:"season"`
	SeasonName    string                   `json:"seasonName"`
	Status        domain.ApplicationStatus `json:"status"`
	LastUpdated   time.Time                `json:"lastUpdated"`
	Notes         *string                  `json:"notes,omitempty"`
	Rating        *int                     `json:"rating,omitempty"`
	DateSubmitted *time.Time               `json:"dateSubmitted,omitempty"`
	Profile       domain.Profile           `json:"profile,omitempty"`
}

// profileExcerptKeys are the profile fields admins see in list views.
var profileExcerptKeys = []string{"firstName", "lastName", "year", "gender", "rolePreference"}

// PublicApplication projects an application for the requester. Review fields
// are visible to admins, and notes to candidates once a verdict is final.
func PublicApplication(app *domain.Application, admin bool) ApplicationResponse {
	out := ApplicationResponse{
		ID:            app.ID,
		User:          app.UserID,
		Season:        app.SeasonID,
		SeasonName:    app.SeasonName,
		Status:        app.Status,
		Profile:       app.Profile.Clone(),
		Availability:  append([]time.Time{}, app.Availability...),
		InterviewTime: app.InterviewTime,
		DateSubmitted: app.DateSubmitted,
		LastUpdated:   app.LastUpdated,
	}
	switch {
	case admin:
		out.Notes = app.Notes
		out.Rating = app.Rating
		out.InterviewNotes = app.InterviewNotes
		out.InterviewRating = app.InterviewRating
		out.GraderReviews = append([]domain.GraderReview{}, app.GraderReviews...)
	case app.Status.Terminal():
		out.Notes = app.Notes
	}
	return out
}

// MetaApplication projects the list summary. Admins additionally get review
// fields and a profile excerpt.
func MetaApplication(app *domain.Application, admin bool) ApplicationMeta {
	out := ApplicationMeta{
		ID:          app.ID,
		User:        app.UserID,
		Season:      app.SeasonID,
		SeasonName:  app.SeasonName,
		Status:      app.Status,
		LastUpdated: app.LastUpdated,
	}
	if !admin {
		return out
	}
	out.Notes = app.Notes
	out.Rating = app.Rating
	out.DateSubmitted = app.DateSubmitted
	out.Profile = domain.Profile{}
	for _, key := range profileExcerptKeys {
		if v, ok := app.Profile[key]; ok {
			out.Profile[key] = v
		}
	}
	return out
}

// ApplicationList projects a listing. Extended requests get the full public
// projection, which still hides review fields from non-admins.
func ApplicationList(apps []domain.Application, admin, extended bool) []any {
	out := make([]any, 0, len(apps))
	for i := range apps {
		if extended {
			out = append(out, PublicApplication(&apps[i], admin))
			continue
		}
		out = append(out, MetaApplication(&apps[i], admin))
	}
	return out
}
