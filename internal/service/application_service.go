package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/events"
	"github.com/bruinrecruit/recruitment-service/internal/observability"
	"github.com/bruinrecruit/recruitment-service/internal/repository"
	"github.com/bruinrecruit/recruitment-service/internal/workflow"
	"github.com/bruinrecruit/recruitment-service/pkg/errorutil"
)

// ApplicationService binds authenticated actors to workflow decisions. It
// loads applications, enforces ownership and role, asks the workflow machine
// for a command and persists the resulting delta.
type ApplicationService struct {
	apps       repository.ApplicationRepository
	seasons    repository.SeasonRepository
	machine    *workflow.Machine
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	AppRepo    repository.ApplicationRepository
	SeasonRepo repository.SeasonRepository
	Machine    *workflow.Machine
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// ApplicationFilter narrows admin listings.
type ApplicationFilter struct {
	SeasonID string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	machine := deps.Machine
	if machine == nil {
		machine = workflow.NewMachine()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		apps:       deps.AppRepo,
		seasons:    deps.SeasonRepo,
		machine:    machine,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// List returns every application for admins, optionally for one season, and
// only the caller's own applications otherwise.
func (s *ApplicationService) List(ctx context.Context, actor domain.Actor, filter ApplicationFilter) ([]domain.Application, error) {
	if !actor.IsAdmin() {
		return s.apps.ListByUser(ctx, actor.ID)
	}
	if seasonID := strings.TrimSpace(filter.SeasonID); seasonID != "" {
		return s.apps.ListBySeason(ctx, seasonID)
	}
	return s.apps.ListAll(ctx)
}

// Get loads one application the actor may see.
func (s *ApplicationService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Owns(app) {
		return nil, errorutil.NewForbidden("You do not have access to this application")
	}
	return app, nil
}

// Create opens an application for the current season, carrying the profile
// forward from the user's most recent application.
func (s *ApplicationService) Create(ctx context.Context, actor domain.Actor) (*domain.Application, error) {
	if actor.IsAdmin() {
		return nil, errorutil.NewForbidden("Administrators cannot create applications")
	}

	season, err := s.seasons.FindOpenFor(ctx, s.machine.Now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errorutil.NewBadRequest("No recruiting seasons open right now")
	}
	if err != nil {
		return nil, err
	}

	profile := domain.Profile{}
	latest, err := s.apps.LatestForUser(ctx, actor.ID)
	switch {
	case err == nil:
		if latest.SeasonID == season.ID {
			return nil, errorutil.NewBadRequest("You have already created an application for this recruiting season")
		}
		profile = latest.Profile.Clone()
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	app := &domain.Application{
		UserID:     actor.ID,
		SeasonID:   season.ID,
		SeasonName: season.Name,
		Status:     domain.StatusInProgress,
		Profile:    profile,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("application created",
		zap.String("application_id", app.ID),
		zap.String("season_id", season.ID),
		zap.String("actor_id", actor.ID))
	s.publish(ctx, events.EventApplicationCreated, app.ID, actor, events.ApplicationCreatedPayload{
		UserID:     app.UserID,
		SeasonID:   app.SeasonID,
		SeasonName: app.SeasonName,
	})
	return app, nil
}

// UpdateProfile replaces the profile of the caller's in-progress application.
func (s *ApplicationService) UpdateProfile(ctx context.Context, actor domain.Actor, id string, profile domain.Profile) (*domain.Application, error) {
	if actor.IsAdmin() {
		return nil, errorutil.NewMethodNotAllowed("Administrators cannot edit application profiles")
	}
	app, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	cmd, err := s.machine.EditProfile(app, profile)
	if err != nil {
		return nil, translateError(err)
	}
	return s.apply(ctx, actor, app, cmd)
}

// UpdateAvailability records interview slots and advances the application to
// PENDING_INTERVIEW in one write.
func (s *ApplicationService) UpdateAvailability(ctx context.Context, actor domain.Actor, id string, slots []time.Time) (*domain.Application, error) {
	if actor.IsAdmin() {
		return nil, errorutil.NewMethodNotAllowed("Administrators cannot submit availability")
	}
	app, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	cmd, err := s.machine.SubmitAvailability(app, slots)
	if err != nil {
		return nil, translateError(err)
	}
	return s.apply(ctx, actor, app, cmd)
}

// Submit moves the caller's application out of IN_PROGRESS.
func (s *ApplicationService) Submit(ctx context.Context, actor domain.Actor, id string) (*domain.Application, error) {
	if actor.IsAdmin() {
		return nil, errorutil.NewForbidden("Administrators cannot submit applications")
	}
	app, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	cmd, err := s.machine.Submit(app)
	if err != nil {
		return nil, translateError(err)
	}
	return s.apply(ctx, actor, app, cmd)
}

// Review applies an admin status transition or grader note.
func (s *ApplicationService) Review(ctx context.Context, actor domain.Actor, id string, req workflow.ReviewRequest) (*domain.Application, error) {
	if !actor.IsAdmin() {
		return nil, errorutil.NewForbidden("Only administrators can review applications")
	}
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	cmd, err := s.machine.Review(app, actor, req)
	if err != nil {
		return nil, translateError(err)
	}
	return s.apply(ctx, actor, app, cmd)
}

// Delete removes an application regardless of status.
func (s *ApplicationService) Delete(ctx context.Context, actor domain.Actor, id string) (int64, error) {
	if !actor.IsAdmin() {
		return 0, errorutil.NewMethodNotAllowed("You cannot delete applications")
	}
	if strings.TrimSpace(id) == "" {
		return 0, errorutil.NewBadRequest("An application id is required")
	}
	n, err := s.apps.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("application deleted", zap.String("application_id", id), zap.String("actor_id", actor.ID))
		s.publish(ctx, events.EventApplicationDeleted, id, actor, nil)
	}
	return n, nil
}

func (s *ApplicationService) load(ctx context.Context, id string) (*domain.Application, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errorutil.NewBadRequest("An application id is required")
	}
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, translateError(err)
	}
	return app, nil
}

func (s *ApplicationService) loadOwned(ctx context.Context, actor domain.Actor, id string) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(app) {
		return nil, errorutil.NewForbidden("You do not have access to this application")
	}
	return app, nil
}

// apply persists the command against the version that was loaded.
func (s *ApplicationService) apply(ctx context.Context, actor domain.Actor, app *domain.Application, cmd workflow.Command) (*domain.Application, error) {
	updated, err := s.apps.Update(ctx, app.ID, app.Version, cmd.Delta(s.machine.Now()))
	if err != nil {
		return nil, translateError(err)
	}

	if updated.Status != app.Status {
		s.metrics.RecordTransition(string(app.Status), string(updated.Status))
		s.logger.Info("application status changed",
			zap.String("application_id", app.ID),
			zap.String("from", string(app.Status)),
			zap.String("to", string(updated.Status)),
			zap.String("command", cmd.Name()),
			zap.String("actor_id", actor.ID))
		s.publish(ctx, events.EventApplicationStatusChanged, app.ID, actor, events.StatusChangedPayload{
			OldStatus: app.Status,
			NewStatus: updated.Status,
			Command:   cmd.Name(),
		})
	}

	switch c := cmd.(type) {
	case workflow.SubmitCommand:
		s.publish(ctx, events.EventApplicationSubmitted, app.ID, actor, nil)
	case workflow.ProfileCommand:
		s.publish(ctx, events.EventProfileUpdated, app.ID, actor, nil)
	case workflow.AvailabilityCommand:
		s.publish(ctx, events.EventAvailabilitySubmitted, app.ID, actor, events.AvailabilitySubmittedPayload{Slots: len(c.Slots)})
	case workflow.GraderNoteCommand:
		s.metrics.RecordGraderReview()
		s.logger.Info("grader review added",
			zap.String("application_id", app.ID),
			zap.String("grader", c.Review.Grader),
			zap.String("actor_id", actor.ID))
		s.publish(ctx, events.EventGraderReviewAdded, app.ID, actor, events.GraderReviewAddedPayload{
			ReviewID: c.Review.ID,
			Grader:   c.Review.Grader,
			Criteria: len(c.Review.Criteria),
		})
	}
	return updated, nil
}

func (s *ApplicationService) publish(ctx context.Context, eventType events.EventType, subjectID string, actor domain.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.New(eventType, subjectID, actor, s.machine.Now(), payload))
}

// translateError maps workflow refusals and repository sentinels onto the
// HTTP error taxonomy.
func translateError(err error) error {
	var wfErr *workflow.Error
	switch {
	case errors.As(err, &wfErr):
		if wfErr.Kind == workflow.KindForbidden {
			return errorutil.NewForbidden(wfErr.Message)
		}
		return errorutil.NewBadRequest(wfErr.Message)
	case errors.Is(err, repository.ErrNotFound):
		return errorutil.NewNotFound("application", nil)
	case errors.Is(err, repository.ErrVersionConflict):
		return errorutil.NewConflict("Application was modified by another request; reload and retry", nil)
	}
	return err
}
