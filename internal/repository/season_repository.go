package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
)

// SeasonRepository owns recruiting season records.
type SeasonRepository interface {
	// Create inserts the season unless it overlaps an existing one. The overlap
	// check and insert are a single atomic unit.
	Create(ctx context.Context, season *domain.Season) error
	GetByID(ctx context.Context, id string) (*domain.Season, error)
	List(ctx context.Context) ([]domain.Season, error)
	FindOpenFor(ctx context.Context, date time.Time) (*domain.Season, error)
	FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Season, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

type seasonRepository struct {
	pool DBTX
}

// NewSeasonRepository instantiates the repository.
func NewSeasonRepository(pool DBTX) SeasonRepository {
	return &seasonRepository{pool: pool}
}

const seasonColumns = `id, name, start_date, end_date, created_at`

func (r *seasonRepository) Create(ctx context.Context, season *domain.Season) error {
	var err error
	for attempt := 0; attempt < maxSerializableAttempts; attempt++ {
		err = r.createOnce(ctx, season)
		if pgErrorCode(err) != pgSerializationFailure {
			return err
		}
	}
	return err
}

func (r *seasonRepository) createOnce(ctx context.Context, season *domain.Season) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	overlapping, err := findOverlapping(ctx, tx, season.StartDate, season.EndDate)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return ErrSeasonOverlap
	}

	const insert = `
        INSERT INTO seasons (name, start_date, end_date)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert, season.Name, season.StartDate, season.EndDate).
		Scan(&season.ID, &season.CreatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *seasonRepository) GetByID(ctx context.Context, id string) (*domain.Season, error) {
	return r.fetchSingle(ctx, `SELECT `+seasonColumns+` FROM seasons WHERE id=$1`, id)
}

func (r *seasonRepository) List(ctx context.Context) ([]domain.Season, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+seasonColumns+` FROM seasons ORDER BY start_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSeasons(rows)
}

func (r *seasonRepository) FindOpenFor(ctx context.Context, date time.Time) (*domain.Season, error) {
	const query = `SELECT ` + seasonColumns + ` FROM seasons
        WHERE start_date < $1 AND end_date > $1
        ORDER BY start_date DESC LIMIT 1`
	return r.fetchSingle(ctx, query, date)
}

func (r *seasonRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Season, error) {
	return findOverlapping(ctx, r.pool, start, end)
}

// findOverlapping runs on the pool or inside the create transaction.
func findOverlapping(ctx context.Context, q querier, start, end time.Time) ([]domain.Season, error) {
	const query = `SELECT ` + seasonColumns + ` FROM seasons
        WHERE start_date < $2 AND $1 < end_date
        ORDER BY start_date ASC`
	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSeasons(rows)
}

func (r *seasonRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM seasons WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *seasonRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Season, error) {
	var season domain.Season
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&season.ID,
		&season.Name,
		&season.StartDate,
		&season.EndDate,
		&season.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func scanSeasons(rows pgx.Rows) ([]domain.Season, error) {
	result := []domain.Season{}
	for rows.Next() {
		var season domain.Season
		if err := rows.Scan(
			&season.ID,
			&season.Name,
			&season.StartDate,
			&season.EndDate,
			&season.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, season)
	}
	return result, rows.Err()
}
