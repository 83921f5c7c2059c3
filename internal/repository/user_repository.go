package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// UserRepository defines persistence access for credentials.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	SetRoles(ctx context.Context, userID string, roles []domain.Role) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userSelect = `
        SELECT u.id, u.username, u.email, u.password_hash, u.enabled, u.created_at, u.updated_at,
               COALESCE(array_agg(r.role ORDER BY r.role) FILTER (WHERE r.role IS NOT NULL), '{}') AS roles
        FROM users u
        LEFT JOIN user_roles r ON r.user_id = u.id`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, email, password_hash, enabled)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Enabled,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return mapWriteError(err)
	}
	if err := insertRoles(ctx, tx, user.ID, user.Roles); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET email=$1, password_hash=$2, enabled=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`

	if err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Enabled,
		user.ID,
	).Scan(&user.UpdatedAt); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *userRepository) SetRoles(ctx context.Context, userID string, roles []domain.Role) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, `UPDATE users SET updated_at=NOW() WHERE id=$1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id=$1`, userID); err != nil {
		return err
	}
	if err := insertRoles(ctx, tx, userID, roles); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, userSelect+` WHERE u.id=$1 GROUP BY u.id`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchSingle(ctx, userSelect+` WHERE u.username=$1 GROUP BY u.id`, username)
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)`, username).Scan(&exists)
	return exists, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email)=LOWER($1))`, email).Scan(&exists)
	return exists, err
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		user  domain.User
		roles []string
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Enabled,
		&user.CreatedAt,
		&user.UpdatedAt,
		&roles,
	); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseRoles(roles)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", user.ID, err)
	}
	user.Roles = parsed
	return &user, nil
}

func insertRoles(ctx context.Context, tx pgx.Tx, userID string, roles []domain.Role) error {
	for _, role := range domain.NormalizeRoles(roles) {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, string(role),
		); err != nil {
			return mapWriteError(err)
		}
	}
	return nil
}
