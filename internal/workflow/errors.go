package workflow

import "errors"

// Kind classifies a rejected decision.
type Kind int

const (
	// KindInvalid means the request itself is malformed or names an illegal transition.
	KindInvalid Kind = iota
	// KindForbidden means the application is in a state that forbids the caller's action.
	KindForbidden
)

// Error is returned for every refused decision. It never wraps I/O failures.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidTransition = &Error{Kind: KindInvalid, Message: "Application data invalid: status change unsupported"}
	ErrNotInterviewed    = &Error{Kind: KindInvalid, Message: "Application cannot be accepted before the candidate has interviewed"}
	ErrNotSubmittable    = &Error{Kind: KindInvalid, Message: "You can only submit in-progress applications"}
	ErrNotEditable       = &Error{Kind: KindForbidden, Message: "You cannot update a submitted application"}
	ErrNotScheduling     = &Error{Kind: KindForbidden, Message: "You have not yet moved to the interview stage"}
	ErrEmptyAvailability = &Error{Kind: KindInvalid, Message: "availability must contain at least one time slot"}
	ErrMissingReview     = &Error{Kind: KindInvalid, Message: "graderReview must be specified when status is omitted"}
)

func invalid(message string) error {
	return &Error{Kind: KindInvalid, Message: message}
}

// IsForbidden reports whether err is a state-based refusal.
func IsForbidden(err error) bool {
	var wfErr *Error
	return errors.As(err, &wfErr) && wfErr.Kind == KindForbidden
}
