package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/events"
	"github.com/bruinrecruit/recruitment-service/internal/repository"
	"github.com/bruinrecruit/recruitment-service/pkg/errorutil"
)

// SeasonService manages recruiting seasons.
type SeasonService struct {
	seasons    repository.SeasonRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// SeasonInput describes a season creation request. Missing dates are nil.
type SeasonInput struct {
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
}

// NewSeasonService constructs the service.
func NewSeasonService(seasons repository.SeasonRepository, dispatcher events.Dispatcher, logger *zap.Logger) *SeasonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeasonService{seasons: seasons, dispatcher: dispatcher, logger: logger, now: time.Now}
}

func (s *SeasonService) List(ctx context.Context) ([]domain.Season, error) {
	return s.seasons.List(ctx)
}

func (s *SeasonService) Get(ctx context.Context, id string) (*domain.Season, error) {
	season, err := s.seasons.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errorutil.NewNotFound("season", map[string]any{"id": id})
	}
	return season, err
}

// Create validates and stores a season. The overlap check is performed by the
// repository atomically with the insert.
func (s *SeasonService) Create(ctx context.Context, actor domain.Actor, input SeasonInput) (*domain.Season, error) {
	if input.StartDate == nil || input.EndDate == nil {
		return nil, errorutil.NewBadRequest("A season must have a start and end date")
	}
	if !input.StartDate.Before(*input.EndDate) {
		return nil, errorutil.NewBadRequest("A season must start before it ends")
	}

	season := &domain.Season{
		Name:      strings.TrimSpace(input.Name),
		StartDate: input.StartDate.UTC(),
		EndDate:   input.EndDate.UTC(),
	}
	if err := domain.Validate(season); err != nil {
		return nil, err
	}

	if err := s.seasons.Create(ctx, season); err != nil {
		if errors.Is(err, repository.ErrSeasonOverlap) {
			return nil, errorutil.NewBadRequest("A recruiting season overlaps with that date range")
		}
		return nil, err
	}

	s.logger.Info("season created", zap.String("season_id", season.ID), zap.String("actor_id", actor.ID))
	s.publish(ctx, events.EventSeasonCreated, season.ID, actor, events.SeasonPayload{
		Name:      season.Name,
		StartDate: season.StartDate,
		EndDate:   season.EndDate,
	})
	return season, nil
}

// Delete removes a season. Applications keep their denormalized season name.
func (s *SeasonService) Delete(ctx context.Context, actor domain.Actor, id string) (int64, error) {
	if strings.TrimSpace(id) == "" {
		return 0, errorutil.NewBadRequest("A season id is required")
	}
	n, err := s.seasons.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("season deleted", zap.String("season_id", id), zap.String("actor_id", actor.ID))
		s.publish(ctx, events.EventSeasonDeleted, id, actor, nil)
	}
	return n, nil
}

func (s *SeasonService) publish(ctx context.Context, eventType events.EventType, subjectID string, actor domain.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.New(eventType, subjectID, actor, s.now(), payload))
}
