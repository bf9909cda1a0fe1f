// Package memory provides in-process repositories. They back the service when
// no Postgres DSN is configured and are used by tests. Records are copied on
// every read and write so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/repository"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	if user.AccountCreated.IsZero() {
		user.AccountCreated = now
	}
	if user.LastLogin.IsZero() {
		user.LastLogin = now
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.LastLogin = at
	r.users[id] = user
	return nil
}

// SeasonRepository is an in-memory repository.SeasonRepository.
type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]domain.Season
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{seasons: make(map[string]domain.Season)}
}

// Create holds the write lock across the overlap check and insert.
func (r *SeasonRepository) Create(_ context.Context, season *domain.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.overlapping(season.StartDate, season.EndDate)) > 0 {
		return repository.ErrSeasonOverlap
	}
	if season.ID == "" {
		season.ID = uuid.NewString()
	}
	if season.CreatedAt.IsZero() {
		season.CreatedAt = time.Now()
	}
	r.seasons[season.ID] = *season
	return nil
}

func (r *SeasonRepository) GetByID(_ context.Context, id string) (*domain.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	season, ok := r.seasons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &season, nil
}

func (r *SeasonRepository) List(_ context.Context) ([]domain.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(domain.Season) bool { return true }), nil
}

func (r *SeasonRepository) FindOpenFor(_ context.Context, date time.Time) (*domain.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	open := r.sorted(func(s domain.Season) bool { return s.IsOpenAt(date) })
	if len(open) == 0 {
		return nil, repository.ErrNotFound
	}
	return &open[len(open)-1], nil
}

func (r *SeasonRepository) FindOverlapping(_ context.Context, start, end time.Time) ([]domain.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.overlapping(start, end), nil
}

func (r *SeasonRepository) overlapping(start, end time.Time) []domain.Season {
	return r.sorted(func(s domain.Season) bool { return s.Overlaps(start, end) })
}

func (r *SeasonRepository) DeleteByID(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seasons[id]; !ok {
		return 0, nil
	}
	delete(r.seasons, id)
	return 1, nil
}

func (r *SeasonRepository) sorted(keep func(domain.Season) bool) []domain.Season {
	out := []domain.Season{}
	for _, season := range r.seasons {
		if keep(season) {
			out = append(out, season)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

// ApplicationRepository is an in-memory repository.ApplicationRepository.
type ApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]*domain.Application
	seq  int64
	// created preserves insertion order for listing and LatestForUser.
	created map[string]int64
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{
		apps:    make(map[string]*domain.Application),
		created: make(map[string]int64),
	}
}

func (r *ApplicationRepository) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := app.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Status == "" {
		stored.Status = domain.StatusInProgress
	}
	if stored.Profile == nil {
		stored.Profile = domain.Profile{}
	}
	if stored.Availability == nil {
		stored.Availability = []time.Time{}
	}
	if stored.GraderReviews == nil {
		stored.GraderReviews = []domain.GraderReview{}
	}
	now := time.Now()
	stored.CreatedAt = now
	stored.LastUpdated = now
	stored.Version = 1

	r.seq++
	r.apps[stored.ID] = stored
	r.created[stored.ID] = r.seq
	*app = *stored.Clone()
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return app.Clone(), nil
}

func (r *ApplicationRepository) ListByUser(_ context.Context, userID string) ([]domain.Application, error) {
	return r.filter(func(a *domain.Application) bool { return a.UserID == userID }), nil
}

func (r *ApplicationRepository) ListBySeason(_ context.Context, seasonID string) ([]domain.Application, error) {
	return r.filter(func(a *domain.Application) bool { return a.SeasonID == seasonID }), nil
}

func (r *ApplicationRepository) ListAll(_ context.Context) ([]domain.Application, error) {
	return r.filter(func(*domain.Application) bool { return true }), nil
}

func (r *ApplicationRepository) LatestForUser(ctx context.Context, userID string) (*domain.Application, error) {
	apps, _ := r.ListByUser(ctx, userID)
	if len(apps) == 0 {
		return nil, repository.ErrNotFound
	}
	latest := apps[len(apps)-1]
	return &latest, nil
}

func (r *ApplicationRepository) Update(_ context.Context, id string, version int, delta domain.ApplicationDelta) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if app.Version != version {
		return nil, repository.ErrVersionConflict
	}
	updated := app.Clone()
	if delta.LastUpdated.IsZero() {
		delta.LastUpdated = time.Now()
	}
	delta.ApplyTo(updated)
	updated.Version++
	r.apps[id] = updated
	return updated.Clone(), nil
}

func (r *ApplicationRepository) DeleteByID(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return 0, nil
	}
	delete(r.apps, id)
	delete(r.created, id)
	return 1, nil
}

func (r *ApplicationRepository) filter(keep func(*domain.Application) bool) []domain.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*domain.Application{}
	for _, app := range r.apps {
		if keep(app) {
			matched = append(matched, app)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return r.created[matched[i].ID] < r.created[matched[j].ID] })

	out := make([]domain.Application, 0, len(matched))
	for _, app := range matched {
		out = append(out, *app.Clone())
	}
	return out
}

var (
	_ repository.UserRepository        = (*UserRepository)(nil)
	_ repository.SeasonRepository      = (*SeasonRepository)(nil)
	_ repository.ApplicationRepository = (*ApplicationRepository)(nil)
)
