package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/pet-service/pkg/util/errorutil"
)

// ErrAccessDenied is the cause of every failed authorization check.
var ErrAccessDenied = errors.New("access denied")

// RequireAuthenticated fails with 401 when no principal is present.
func RequireAuthenticated(p *Principal) error {
	if p == nil {
		return apperrors.NewAccessDenied("authentication required", false, ErrAccessDenied)
	}
	return nil
}

// RequireAdmin succeeds only for a principal holding ADMIN.
func RequireAdmin(p *Principal) error {
	if p == nil {
		return RequireAuthenticated(p)
	}
	if !p.IsAdmin() {
		return apperrors.NewAccessDenied("administrator role required", true, ErrAccessDenied)
	}
	return nil
}

// RequireOwnerOrAdmin succeeds for an admin, or when the principal is the
// resource's owning subject. An empty owner subject matches nobody.
func RequireOwnerOrAdmin(p *Principal, ownerSubject string) error {
	if p == nil {
		return RequireAuthenticated(p)
	}
	if p.IsAdmin() {
		return nil
	}
	if ownerSubject != "" && p.Subject == ownerSubject {
		return nil
	}
	return apperrors.NewAccessDenied("not the owner of this resource", true, ErrAccessDenied)
}

// RequireAnyRole rejects anonymous callers with 401.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		if err := RequireAuthenticated(principal); err != nil {
			return err
		}
		return c.Next()
	}
}

// AdminOnly guards a route group with RequireAdmin.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		if err := RequireAdmin(principal); err != nil {
			return err
		}
		return c.Next()
	}
}
