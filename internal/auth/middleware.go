package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// TokenValidator turns a bearer token into a principal.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*Principal, error)
}

// Gate attaches a principal to requests carrying a valid bearer token.
// It never rejects a request; handlers decide what anonymous callers may do.
type Gate struct {
	tokens TokenValidator
	logger *zap.Logger
}

// NewGate constructs the authentication middleware.
func NewGate(tokens TokenValidator, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{tokens: tokens, logger: logger}
}

// Handle is the fiber middleware. It always continues the chain.
func (g *Gate) Handle(c *fiber.Ctx) error {
	g.authenticate(c)
	return c.Next()
}

func (g *Gate) authenticate(c *fiber.Ctx) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("authentication aborted", zap.Any("panic", r), zap.String("path", c.Path()))
		}
	}()

	if _, ok := PrincipalFromContext(c); ok {
		return
	}

	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		g.logger.Warn("empty bearer token", zap.String("path", c.Path()))
		return
	}

	principal, err := g.tokens.Validate(c.UserContext(), token)
	if err != nil {
		if isRejection(err) {
			g.logger.Debug("bearer token rejected", zap.Error(err))
		} else {
			g.logger.Error("bearer token validation failed", zap.Error(err))
		}
		return
	}
	attachPrincipal(c, principal)
}

func isRejection(err error) bool {
	return errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrUnknownSubject) ||
		errors.Is(err, ErrSubjectDisabled)
}
