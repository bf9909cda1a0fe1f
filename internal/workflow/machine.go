// Package workflow decides application status transitions. It performs no I/O:
// callers load the application, ask the Machine for a Command, and persist the
// Command's delta.
package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
)

const (
	MinRating = 0
	MaxRating = 5
)

// ReviewRequest is the admin review payload before sanitization.
type ReviewRequest struct {
	Status          *domain.ApplicationStatus
	Notes           *string
	Rating          *int
	InterviewTime   *time.Time
	InterviewNotes  *string
	InterviewRating *int
	GraderReview    *GraderReviewInput
}

// GraderReviewInput is a grader's note and rubric scores.
type GraderReviewInput struct {
	Grader   string
	Notes    string
	Criteria []domain.CriterionScore
}

// Machine evaluates transitions. The clock and id source are injectable for tests.
type Machine struct {
	Now   func() time.Time
	NewID func() string
}

// NewMachine returns a Machine using wall-clock time and uuid ids.
func NewMachine() *Machine {
	return &Machine{Now: time.Now, NewID: uuid.NewString}
}

// Submit decides IN_PROGRESS -> SUBMITTED.
func (m *Machine) Submit(app *domain.Application) (Command, error) {
	if err := checkUserEdge(app, domain.StatusSubmitted, ErrNotSubmittable); err != nil {
		return nil, err
	}
	return SubmitCommand{}, nil
}

// EditProfile decides a profile replacement. Only in-progress applications are editable.
func (m *Machine) EditProfile(app *domain.Application, profile domain.Profile) (Command, error) {
	if app.Status != domain.StatusInProgress {
		return nil, ErrNotEditable
	}
	return ProfileCommand{Profile: SanitizeProfile(profile)}, nil
}

// SubmitAvailability decides a candidate availability submission, which also
// advances SCHEDULE_INTERVIEW -> PENDING_INTERVIEW.
func (m *Machine) SubmitAvailability(app *domain.Application, slots []time.Time) (Command, error) {
	if err := checkUserEdge(app, domain.StatusPendingInterview, ErrNotScheduling); err != nil {
		return nil, err
	}
	clean, err := SanitizeAvailability(slots)
	if err != nil {
		return nil, err
	}
	return AvailabilityCommand{Slots: clean}, nil
}

// Review decides an admin review. A request without a status is a grader note
// append; otherwise the (current, requested) pair must be a listed edge and
// only the fields of that edge's policy are kept.
func (m *Machine) Review(app *domain.Application, reviewer domain.Actor, req ReviewRequest) (Command, error) {
	if req.Status == nil {
		return m.graderNote(app, reviewer, req)
	}

	to := *req.Status
	if !to.Valid() {
		return nil, invalid(fmt.Sprintf("Application data invalid: unknown status %q", to))
	}
	r, ok := adminTransitions[Edge{From: app.Status, To: to}]
	if !ok {
		return nil, ErrInvalidTransition
	}
	if r.guard != nil {
		if err := r.guard(app, m.Now()); err != nil {
			return nil, err
		}
	}

	switch r.policy {
	case PolicyAppReview:
		if err := checkRating("rating", req.Rating); err != nil {
			return nil, err
		}
		return AppReviewCommand{To: to, Notes: req.Notes, Rating: req.Rating}, nil
	case PolicySchedule:
		if req.InterviewTime != nil && req.InterviewTime.IsZero() {
			return nil, invalid("interviewTime must be a valid timestamp")
		}
		return ScheduleCommand{To: to, InterviewTime: req.InterviewTime}, nil
	case PolicyInterviewOutcome:
		if err := checkRating("interviewRating", req.InterviewRating); err != nil {
			return nil, err
		}
		return InterviewOutcomeCommand{To: to, InterviewNotes: req.InterviewNotes, InterviewRating: req.InterviewRating}, nil
	}
	return nil, ErrInvalidTransition
}

func (m *Machine) graderNote(app *domain.Application, reviewer domain.Actor, req ReviewRequest) (Command, error) {
	if req.GraderReview == nil {
		return nil, ErrMissingReview
	}
	in := req.GraderReview

	grader := strings.TrimSpace(in.Grader)
	if grader == "" {
		grader = reviewer.Email
	}
	if grader == "" {
		return nil, invalid("graderReview.grader must be specified")
	}

	criteria := make([]domain.CriterionScore, 0, len(in.Criteria))
	for i, c := range in.Criteria {
		name := strings.TrimSpace(c.Criterion)
		if name == "" {
			return nil, invalid(fmt.Sprintf("graderReview.criteria[%d].criterion must be specified", i))
		}
		score := c.Score
		if err := checkRating(fmt.Sprintf("graderReview.criteria[%d].score", i), &score); err != nil {
			return nil, err
		}
		criteria = append(criteria, domain.CriterionScore{Criterion: name, Score: score, Notes: c.Notes})
	}

	notes := in.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	return GraderNoteCommand{
		Notes: notes,
		Review: domain.GraderReview{
			ID:         m.NewID(),
			ReviewerID: reviewer.ID,
			Grader:     grader,
			Notes:      in.Notes,
			Criteria:   criteria,
			CreatedAt:  m.Now(),
		},
	}, nil
}

// SanitizeProfile is the seam for profile validation. Profiles are currently
// accepted as-is; the copy keeps the caller's map from aliasing the stored one.
func SanitizeProfile(profile domain.Profile) domain.Profile {
	if profile == nil {
		return domain.Profile{}
	}
	return profile.Clone()
}

// SanitizeAvailability drops duplicate slots while keeping submission order.
func SanitizeAvailability(slots []time.Time) ([]time.Time, error) {
	if len(slots) == 0 {
		return nil, ErrEmptyAvailability
	}
	seen := make(map[int64]struct{}, len(slots))
	out := make([]time.Time, 0, len(slots))
	for i, slot := range slots {
		if slot.IsZero() {
			return nil, invalid(fmt.Sprintf("availability[%d] must be a valid timestamp", i))
		}
		key := slot.UnixNano()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, slot)
	}
	return out, nil
}

func checkRating(field string, rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < MinRating || *rating > MaxRating {
		return invalid(fmt.Sprintf("%s must be between %d and %d", field, MinRating, MaxRating))
	}
	return nil
}
