package repository

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/pet-service/pkg/util/errorutil"
)

func TestMapWriteError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "owner phone taken",
			err:        &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "owners_phone_key"},
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
			wantField:  "phone",
		},
		{
			name:       "username taken",
			err:        &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"},
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
			wantField:  "username",
		},
		{
			name:       "user email taken",
			err:        fmt.Errorf("insert user: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
			wantField:  "email",
		},
		{
			name:       "owner linked twice",
			err:        &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "owners_user_id_key"},
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
			wantField:  "user_id",
		},
		{
			name:       "missing owner",
			err:        &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "pets_owner_id_fkey"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeValidation,
		},
		{
			name:       "check violation",
			err:        &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "pets_type_check"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := mapWriteError(tt.err)

			var domainErr *apperrors.DomainError
			require.True(t, errors.As(err, &domainErr), "got %T", err)
			assert.Equal(t, tt.wantStatus, domainErr.HTTPStatus)
			assert.Equal(t, tt.wantCode, domainErr.Code)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, domainErr.Details["field"])
			}
		})
	}
}

func TestMapWriteError_PassThrough(t *testing.T) {
	t.Parallel()

	assert.NoError(t, mapWriteError(nil))
	assert.Same(t, pgx.ErrNoRows, mapWriteError(pgx.ErrNoRows))

	plain := errors.New("connection reset")
	assert.Same(t, plain, mapWriteError(plain))

	other := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	assert.Same(t, error(other), mapWriteError(other))
}

func TestConstraintField(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"users_email_key":         "email",
		"users_username_key":      "username",
		"owners_phone_key":        "phone",
		"owners_user_id_key":      "user_id",
		"user_roles_user_id_fkey": "user_id",
		"user_roles_pkey":         "user_roles",
		"pets_type_check":         "type",
		"custom_thing_key":        "custom_thing",
		"pets_pkey":               "pets",
		"_key":                    "_key",
		"nameless":                "nameless",
		"":                        "",
	}
	for constraint, want := range tests {
		assert.Equal(t, want, constraintField(constraint), constraint)
	}
}
