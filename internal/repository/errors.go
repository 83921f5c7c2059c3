package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/pet-service/pkg/util/errorutil"
)

// mapWriteError turns constraint violations into domain errors. Other errors pass through.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		field := constraintField(pgErr.ConstraintName)
		return apperrors.NewConflict(field+" already exists", map[string]any{"field": field})
	case pgerrcode.ForeignKeyViolation:
		return apperrors.NewValidationError("referenced resource does not exist", map[string]any{"constraint": pgErr.ConstraintName})
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return apperrors.NewValidationError("invalid value", map[string]any{"constraint": pgErr.ConstraintName})
	}
	return err
}

// constraintTables lists table prefixes used in constraint names, longest first.
var constraintTables = []string{"user_roles", "owners", "users", "pets"}

// constraintField extracts the column from names like "users_email_key" or
// "user_roles_user_id_fkey". Unrecognised names are returned unchanged.
func constraintField(constraint string) string {
	name := constraint
	for _, suffix := range []string{"_pkey", "_fkey", "_key", "_check"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			name = trimmed
			break
		}
	}
	if name == constraint {
		return constraint
	}
	for _, table := range constraintTables {
		if field, ok := strings.CutPrefix(name, table+"_"); ok && field != "" {
			return field
		}
	}
	if name == "" {
		return constraint
	}
	return name
}
