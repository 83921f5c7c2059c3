package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// PetFilter captures listing parameters.
type PetFilter struct {
	Type    *domain.PetType
	OwnerID *string
	Search  string
}

// PetRepository encapsulates pet persistence.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	Update(ctx context.Context, pet *domain.Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Pet, error)
	List(ctx context.Context, filter PetFilter) ([]domain.Pet, error)
	// OwnerSubject returns the username owning the pet through its owner, or "" when unlinked.
	OwnerSubject(ctx context.Context, petID string) (string, error)
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) (map[domain.PetType]int64, error)
}

type petRepository struct {
	pool *pgxpool.Pool
}

// NewPetRepository instantiates repository.
func NewPetRepository(pool *pgxpool.Pool) PetRepository {
	return &petRepository{pool: pool}
}

const petSelect = `
        SELECT p.id, p.owner_id, o.first_name, o.last_name, p.name, p.type, p.breed, p.date_of_birth,
               p.color, p.description, p.created_at, p.updated_at
        FROM pets p JOIN owners o ON o.id = p.owner_id`

func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	const query = `
        INSERT INTO pets (owner_id, name, type, breed, date_of_birth, color, description)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		pet.OwnerID,
		pet.Name,
		pet.Type,
		pet.Breed,
		pet.DateOfBirth,
		pet.Color,
		pet.Description,
	).Scan(&pet.ID, &pet.CreatedAt, &pet.UpdatedAt)
	return mapWriteError(err)
}

func (r *petRepository) Update(ctx context.Context, pet *domain.Pet) error {
	const query = `
        UPDATE pets SET owner_id=$1, name=$2, type=$3, breed=$4, date_of_birth=$5, color=$6, description=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		pet.OwnerID,
		pet.Name,
		pet.Type,
		pet.Breed,
		pet.DateOfBirth,
		pet.Color,
		pet.Description,
		pet.ID,
	).Scan(&pet.UpdatedAt)
	return mapWriteError(err)
}

func (r *petRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *petRepository) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	return scanPet(r.pool.QueryRow(ctx, petSelect+` WHERE p.id=$1`, id))
}

func (r *petRepository) List(ctx context.Context, filter PetFilter) ([]domain.Pet, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("p.type=$%d", len(args)))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("p.owner_id=$%d", len(args)))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(p.name) LIKE %[1]s OR LOWER(p.breed) LIKE %[1]s OR LOWER(o.first_name) LIKE %[1]s OR LOWER(o.last_name) LIKE %[1]s)",
			placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY p.name, p.id`, petSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Pet
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *pet)
	}
	return result, rows.Err()
}

func (r *petRepository) OwnerSubject(ctx context.Context, petID string) (string, error) {
	const query = `
        SELECT COALESCE(u.username, '')
        FROM pets p
        JOIN owners o ON o.id = p.owner_id
        LEFT JOIN users u ON u.id = o.user_id
        WHERE p.id=$1`
	var subject string
	if err := r.pool.QueryRow(ctx, query, petID).Scan(&subject); err != nil {
		return "", err
	}
	return subject, nil
}

func (r *petRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pets`).Scan(&n)
	return n, err
}

func (r *petRepository) CountByType(ctx context.Context) (map[domain.PetType]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT type, COUNT(*) FROM pets GROUP BY type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.PetType]int64)
	for rows.Next() {
		var (
			petType domain.PetType
			n       int64
		)
		if err := rows.Scan(&petType, &n); err != nil {
			return nil, err
		}
		counts[petType] = n
	}
	return counts, rows.Err()
}

func scanPet(row pgx.Row) (*domain.Pet, error) {
	var pet domain.Pet
	var ownerFirst, ownerLast string
	if err := row.Scan(
		&pet.ID,
		&pet.OwnerID,
		&ownerFirst,
		&ownerLast,
		&pet.Name,
		&pet.Type,
		&pet.Breed,
		&pet.DateOfBirth,
		&pet.Color,
		&pet.Description,
		&pet.CreatedAt,
		&pet.UpdatedAt,
	); err != nil {
		return nil, err
	}
	owner := domain.Owner{FirstName: ownerFirst, LastName: ownerLast}
	pet.OwnerName = owner.FullName()
	return &pet, nil
}
