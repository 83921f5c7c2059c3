package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pet-service/internal/domain"
)

const principalKey = "auth_principal"

type principalCtxKey struct{}

// Principal is the authenticated caller for the lifetime of one request.
type Principal struct {
	Subject string
	UserID  string
	Roles   []domain.Role
}

// HasRole reports whether the principal holds role.
func (p *Principal) HasRole(role domain.Role) bool {
	if p == nil {
		return false
	}
	return domain.ContainsRole(p.Roles, role)
}

// IsAdmin reports whether the principal holds ADMIN.
func (p *Principal) IsAdmin() bool {
	return p.HasRole(domain.RoleAdmin)
}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFrom extracts the principal stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(principalCtxKey{}).(*Principal)
	return p, ok && p != nil
}

// PrincipalFromContext retrieves the authenticated caller attached by the gate.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil
}

func attachPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
	c.SetUserContext(WithPrincipal(c.UserContext(), p))
}
