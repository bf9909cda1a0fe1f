package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationCreated       EventType = "application_created"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventProfileUpdated           EventType = "application_profile_updated"
	EventAvailabilitySubmitted    EventType = "application_availability_submitted"
	EventGraderReviewAdded        EventType = "grader_review_added"
	EventApplicationDeleted       EventType = "application_deleted"
	EventSeasonCreated            EventType = "season_created"
	EventSeasonDeleted            EventType = "season_deleted"
)

// AllTypes lists every event the services publish.
var AllTypes = []EventType{
	EventApplicationCreated,
	EventApplicationSubmitted,
	EventApplicationStatusChanged,
	EventProfileUpdated,
	EventAvailabilitySubmitted,
	EventGraderReviewAdded,
	EventApplicationDeleted,
	EventSeasonCreated,
	EventSeasonDeleted,
}

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID     string            `json:"user_id"`
	AccessType domain.AccessType `json:"access_type"`
}

// ActorFrom converts a request identity.
func ActorFrom(actor domain.Actor) Actor {
	return Actor{UserID: actor.ID, AccessType: actor.AccessType}
}

// Event represents a domain event emitted by services. SubjectID is the
// application or season the event concerns.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a fresh id.
func New(eventType EventType, subjectID string, actor domain.Actor, at time.Time, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     ActorFrom(actor),
		Timestamp: at,
		Payload:   payload,
	}
}

// ApplicationCreatedPayload payload.
type ApplicationCreatedPayload struct {
	UserID     string `json:"user_id"`
	SeasonID   string `json:"season_id"`
	SeasonName string `json:"season_name"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
	Command   string                   `json:"command"`
}

// AvailabilitySubmittedPayload payload.
type AvailabilitySubmittedPayload struct {
	Slots int `json:"slots"`
}

// GraderReviewAddedPayload payload.
type GraderReviewAddedPayload struct {
	ReviewID string `json:"review_id"`
	Grader   string `json:"grader"`
	Criteria int    `json:"criteria"`
}

// SeasonPayload payload.
type SeasonPayload struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
