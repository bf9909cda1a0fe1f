package workflow

import (
	"time"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
)

// Command is a sanitized, typed mutation. Each implementation carries exactly
// the fields its transition may write.
type Command interface {
	Name() string
	// Delta produces the persisted change, stamping lastUpdated with now.
	Delta(now time.Time) domain.ApplicationDelta
}

// SubmitCommand moves an in-progress application to SUBMITTED.
type SubmitCommand struct{}

func (SubmitCommand) Name() string { return "submit" }

func (SubmitCommand) Delta(now time.Time) domain.ApplicationDelta {
	status := domain.StatusSubmitted
	submitted := now
	return domain.ApplicationDelta{Status: &status, DateSubmitted: &submitted, LastUpdated: now}
}

// ProfileCommand replaces the candidate profile.
type ProfileCommand struct {
	Profile domain.Profile
}

func (ProfileCommand) Name() string { return "profile_update" }

func (c ProfileCommand) Delta(now time.Time) domain.ApplicationDelta {
	return domain.ApplicationDelta{Profile: c.Profile.Clone(), LastUpdated: now}
}

// AvailabilityCommand records candidate interview slots and advances the
// application to PENDING_INTERVIEW in the same write.
type AvailabilityCommand struct {
	Slots []time.Time
}

func (AvailabilityCommand) Name() string { return "availability" }

func (c AvailabilityCommand) Delta(now time.Time) domain.ApplicationDelta {
	status := domain.StatusPendingInterview
	return domain.ApplicationDelta{
		Status:       &status,
		Availability: append([]time.Time(nil), c.Slots...),
		LastUpdated:  now,
	}
}

// AppReviewCommand is the initial admin review of a submitted application.
type AppReviewCommand struct {
	To     domain.ApplicationStatus
	Notes  *string
	Rating *int
}

func (AppReviewCommand) Name() string { return string(PolicyAppReview) }

func (c AppReviewCommand) Delta(now time.Time) domain.ApplicationDelta {
	to := c.To
	return domain.ApplicationDelta{Status: &to, Notes: c.Notes, Rating: c.Rating, LastUpdated: now}
}

// ScheduleCommand moves an application into the interview stage.
type ScheduleCommand struct {
	To            domain.ApplicationStatus
	InterviewTime *time.Time
}

func (ScheduleCommand) Name() string { return string(PolicySchedule) }

func (c ScheduleCommand) Delta(now time.Time) domain.ApplicationDelta {
	to := c.To
	return domain.ApplicationDelta{Status: &to, InterviewTime: c.InterviewTime, LastUpdated: now}
}

// InterviewOutcomeCommand records the post-interview verdict.
type InterviewOutcomeCommand struct {
	To              domain.ApplicationStatus
	InterviewNotes  *string
	InterviewRating *int
}

func (InterviewOutcomeCommand) Name() string { return string(PolicyInterviewOutcome) }

func (c InterviewOutcomeCommand) Delta(now time.Time) domain.ApplicationDelta {
	to := c.To
	return domain.ApplicationDelta{
		Status:          &to,
		InterviewNotes:  c.InterviewNotes,
		InterviewRating: c.InterviewRating,
		LastUpdated:     now,
	}
}

// GraderNoteCommand appends a grader review without changing status.
type GraderNoteCommand struct {
	Notes  string
	Review domain.GraderReview
}

func (GraderNoteCommand) Name() string { return "grader_note" }

func (c GraderNoteCommand) Delta(now time.Time) domain.ApplicationDelta {
	notes := c.Notes
	review := c.Review
	review.Criteria = append([]domain.CriterionScore(nil), c.Review.Criteria...)
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	return domain.ApplicationDelta{Notes: &notes, AppendGraderReview: &review, LastUpdated: now}
}
