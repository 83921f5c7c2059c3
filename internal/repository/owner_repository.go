package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// OwnerRepository encapsulates owner persistence.
type OwnerRepository interface {
	Create(ctx context.Context, owner *domain.Owner) error
	Update(ctx context.Context, owner *domain.Owner) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Owner, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Owner, error)
	List(ctx context.Context, search string) ([]domain.Owner, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	// OwnerSubject returns the username linked to the owner, or "" when unlinked.
	OwnerSubject(ctx context.Context, ownerID string) (string, error)
	Count(ctx context.Context) (int64, error)
}

type ownerRepository struct {
	pool *pgxpool.Pool
}

// NewOwnerRepository instantiates repository.
func NewOwnerRepository(pool *pgxpool.Pool) OwnerRepository {
	return &ownerRepository{pool: pool}
}

const ownerColumns = `id, user_id, first_name, last_name, email, phone, address, created_at, updated_at`

func (r *ownerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	const query = `
        INSERT INTO owners (user_id, first_name, last_name, email, phone, address)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		owner.UserID,
		owner.FirstName,
		owner.LastName,
		owner.Email,
		owner.Phone,
		owner.Address,
	).Scan(&owner.ID, &owner.CreatedAt, &owner.UpdatedAt)
	return mapWriteError(err)
}

func (r *ownerRepository) Update(ctx context.Context, owner *domain.Owner) error {
	const query = `
        UPDATE owners SET user_id=$1, first_name=$2, last_name=$3, email=$4, phone=$5, address=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		owner.UserID,
		owner.FirstName,
		owner.LastName,
		owner.Email,
		owner.Phone,
		owner.Address,
		owner.ID,
	).Scan(&owner.UpdatedAt)
	return mapWriteError(err)
}

func (r *ownerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM owners WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ownerRepository) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	return r.fetchSingle(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id=$1`, id)
}

func (r *ownerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Owner, error) {
	return r.fetchSingle(ctx, `SELECT `+ownerColumns+` FROM owners WHERE user_id=$1`, userID)
}

func (r *ownerRepository) List(ctx context.Context, search string) ([]domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners`
	args := []any{}
	if term := strings.TrimSpace(search); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		query += ` WHERE LOWER(first_name) LIKE $1 OR LOWER(last_name) LIKE $1 OR LOWER(email) LIKE $1`
	}
	query += ` ORDER BY last_name, first_name, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Owner
	for rows.Next() {
		owner, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *owner)
	}
	return result, rows.Err()
}

func (r *ownerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM owners WHERE LOWER(email)=LOWER($1))`, email).Scan(&exists)
	return exists, err
}

func (r *ownerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM owners WHERE phone=$1)`, phone).Scan(&exists)
	return exists, err
}

func (r *ownerRepository) OwnerSubject(ctx context.Context, ownerID string) (string, error) {
	const query = `
        SELECT COALESCE(u.username, '')
        FROM owners o LEFT JOIN users u ON u.id = o.user_id
        WHERE o.id=$1`
	var subject string
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&subject); err != nil {
		return "", err
	}
	return subject, nil
}

func (r *ownerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM owners`).Scan(&n)
	return n, err
}

func (r *ownerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Owner, error) {
	return scanOwner(r.pool.QueryRow(ctx, query, arg))
}

func scanOwner(row pgx.Row) (*domain.Owner, error) {
	var owner domain.Owner
	if err := row.Scan(
		&owner.ID,
		&owner.UserID,
		&owner.FirstName,
		&owner.LastName,
		&owner.Email,
		&owner.Phone,
		&owner.Address,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &owner, nil
}
