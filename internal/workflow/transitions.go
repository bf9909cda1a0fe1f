package workflow

import (
	"time"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
)

// Policy names the payload fields an admin transition may write.
type Policy string

const (
	// PolicyAppReview writes notes, rating and status.
	PolicyAppReview Policy = "app_review"
	// PolicySchedule writes interviewTime and status.
	PolicySchedule Policy = "schedule"
	// PolicyInterviewOutcome writes status plus the post-interview notes and rating.
	PolicyInterviewOutcome Policy = "interview_outcome"
)

// Edge is a (current, requested) status pair.
type Edge struct {
	From domain.ApplicationStatus
	To   domain.ApplicationStatus
}

type guardFunc func(app *domain.Application, now time.Time) error

type rule struct {
	policy Policy
	guard  guardFunc
}

// adminTransitions is the complete set of admin-driven status edges.
// Any pair not listed is rejected.
var adminTransitions = map[Edge]rule{
	{domain.StatusSubmitted, domain.StatusScheduleInterview}:        {policy: PolicyAppReview},
	{domain.StatusSubmitted, domain.StatusRejected}:                 {policy: PolicyAppReview},
	{domain.StatusScheduleInterview, domain.StatusPendingInterview}: {policy: PolicySchedule},
	{domain.StatusScheduleInterview, domain.StatusRejected}:         {policy: PolicySchedule},
	{domain.StatusPendingInterview, domain.StatusAccepted}:          {policy: PolicyInterviewOutcome},
	{domain.StatusPendingInterview, domain.StatusRejected}:          {policy: PolicyInterviewOutcome},
	// correction paths for accidental rejections
	{domain.StatusRejected, domain.StatusScheduleInterview}: {policy: PolicyAppReview},
	{domain.StatusRejected, domain.StatusPendingInterview}:  {policy: PolicySchedule},
	{domain.StatusRejected, domain.StatusAccepted}:          {policy: PolicyInterviewOutcome, guard: requireInterviewed},
}

// userTransitions are status changes a candidate causes on their own application.
var userTransitions = map[Edge]struct{}{
	{domain.StatusInProgress, domain.StatusSubmitted}:               {},
	{domain.StatusScheduleInterview, domain.StatusPendingInterview}: {},
}

// checkUserEdge reports whether the candidate may move app to the target
// status. refusal is returned when the current status has no such edge.
func checkUserEdge(app *domain.Application, to domain.ApplicationStatus, refusal error) error {
	if _, ok := userTransitions[Edge{From: app.Status, To: to}]; !ok {
		return refusal
	}
	return nil
}

func requireInterviewed(app *domain.Application, now time.Time) error {
	if !app.Interviewed(now) {
		return ErrNotInterviewed
	}
	return nil
}
