package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
)

// ApplicationRepository encapsulates application persistence. Every read
// returns an independent snapshot.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Application, error)
	ListBySeason(ctx context.Context, seasonID string) ([]domain.Application, error)
	ListAll(ctx context.Context) ([]domain.Application, error)
	LatestForUser(ctx context.Context, userID string) (*domain.Application, error)
	// Update applies delta if the stored version still equals version and
	// returns the updated record. A stale version yields ErrVersionConflict.
	Update(ctx context.Context, id string, version int, delta domain.ApplicationDelta) (*domain.Application, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

type applicationRepository struct {
	pool DBTX
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool DBTX) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, user_id, season_id, season_name, status, profile, notes, rating,
        availability, interview_time, interview_notes, interview_rating, grader_reviews,
        date_submitted, last_updated, created_at, version`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (user_id, season_id, season_name, status, profile)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + applicationColumns

	profile := app.Profile
	if profile == nil {
		profile = domain.Profile{}
	}
	status := app.Status
	if status == "" {
		status = domain.StatusInProgress
	}
	created, err := scanApplication(r.pool.QueryRow(ctx, query,
		app.UserID,
		app.SeasonID,
		app.SeasonName,
		status,
		profile,
	))
	if err != nil {
		return err
	}
	*app = *created
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := scanApplication(r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return app, nil
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	return r.list(ctx, `WHERE user_id=$1`, userID)
}

func (r *applicationRepository) ListBySeason(ctx context.Context, seasonID string) ([]domain.Application, error) {
	return r.list(ctx, `WHERE season_id=$1`, seasonID)
}

func (r *applicationRepository) ListAll(ctx context.Context) ([]domain.Application, error) {
	return r.list(ctx, ``)
}

func (r *applicationRepository) LatestForUser(ctx context.Context, userID string) (*domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications
        WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`
	app, err := scanApplication(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, translate(err)
	}
	return app, nil
}

func (r *applicationRepository) Update(ctx context.Context, id string, version int, delta domain.ApplicationDelta) (*domain.Application, error) {
	sets := []string{}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if delta.Status != nil {
		set("status", *delta.Status)
	}
	if delta.Profile != nil {
		set("profile", delta.Profile)
	}
	if delta.Notes != nil {
		set("notes", *delta.Notes)
	}
	if delta.Rating != nil {
		set("rating", *delta.Rating)
	}
	if delta.Availability != nil {
		set("availability", delta.Availability)
	}
	if delta.InterviewTime != nil {
		set("interview_time", *delta.InterviewTime)
	}
	if delta.InterviewNotes != nil {
		set("interview_notes", *delta.InterviewNotes)
	}
	if delta.InterviewRating != nil {
		set("interview_rating", *delta.InterviewRating)
	}
	if delta.AppendGraderReview != nil {
		args = append(args, *delta.AppendGraderReview)
		sets = append(sets, fmt.Sprintf("grader_reviews = grader_reviews || jsonb_build_array($%d::jsonb)", len(args)))
	}
	if delta.DateSubmitted != nil {
		set("date_submitted", *delta.DateSubmitted)
	}
	lastUpdated := delta.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now()
	}
	set("last_updated", lastUpdated)
	sets = append(sets, "version = version + 1")

	args = append(args, id, version)
	query := fmt.Sprintf(`UPDATE applications SET %s WHERE id=$%d AND version=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), applicationColumns)

	app, err := scanApplication(r.pool.QueryRow(ctx, query, args...))
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrVersionConflict
	}
	return nil, ErrNotFound
}

func (r *applicationRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *applicationRepository) list(ctx context.Context, where string, args ...any) ([]domain.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications %s ORDER BY created_at ASC`, applicationColumns, where)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *app)
	}
	return result, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	if err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.SeasonID,
		&app.SeasonName,
		&app.Status,
		&app.Profile,
		&app.Notes,
		&app.Rating,
		&app.Availability,
		&app.InterviewTime,
		&app.InterviewNotes,
		&app.InterviewRating,
		&app.GraderReviews,
		&app.DateSubmitted,
		&app.LastUpdated,
		&app.CreatedAt,
		&app.Version,
	); err != nil {
		return nil, err
	}
	return &app, nil
}
