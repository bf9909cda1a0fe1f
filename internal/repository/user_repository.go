package repository

import (
	"context"
	"time"


	"github.com/bruinrecruit/recruitment-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type userRepository struct {
	pool DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool DBTX) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, password_hash, access_type, state, account_created, last_login`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, email, password_hash, access_type, state)
        VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5)
        RETURNING id, account_created, last_login`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.AccessType,
		user.State,
	).Scan(&user.ID, &user.AccountCreated, &user.LastLogin)
	if pgErrorCode(err) == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET last_login=$1 WHERE id=$2`, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.AccessType,
		&user.State,
		&user.AccountCreated,
		&user.LastLogin,
	); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

