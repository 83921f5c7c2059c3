package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/config"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository"
	apperrors "github.com/spec-kit/pet-service/pkg/util/errorutil"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(subject string, roles []domain.Role) (string, time.Time, error)
}

// AuthService coordinates registration, login and credential changes.
type AuthService struct {
	users      repository.UserRepository
	owners     repository.OwnerRepository
	tokens     TokenIssuer
	events     eventPublisher
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	OwnerRepo  repository.OwnerRepository
	Tokens     TokenIssuer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// RegisterInput is the registration payload. Profile fields are optional.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

func (in RegisterInput) hasProfile() bool {
	return strings.TrimSpace(in.FirstName) != "" && strings.TrimSpace(in.LastName) != ""
}

// AuthResult carries the issued token for an authenticated user.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		owners:     deps.OwnerRepo,
		tokens:     deps.Tokens,
		events:     newEventPublisher(deps.Dispatcher, logger),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// Register creates an enabled USER account and, when names are supplied,
// a linked owner profile. It returns a token for the new subject.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)

	errs := fieldErrors{}
	errs.require("username", in.Username)
	errs.length("username", in.Username, minUsernameLen, maxUsernameLen)
	errs.email("email", in.Email)
	errs.require("password", in.Password)
	errs.length("password", in.Password, minPasswordLen, 0)
	errs.phone("phone", in.Phone)
	if err := errs.err(); err != nil {
		return nil, err
	}

	if exists, err := s.users.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"field": "username"})
	}
	if exists, err := s.users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
	}
	if in.hasProfile() {
		if err := s.checkOwnerContact(ctx, in.Email, strings.TrimSpace(in.Phone)); err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []domain.Role{domain.RoleUser},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	payload := events.UserRegisteredPayload{Username: user.Username, Email: user.Email}
	if in.hasProfile() {
		owner := &domain.Owner{
			UserID:    &user.ID,
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Email:     user.Email,
			Phone:     strings.TrimSpace(in.Phone),
		}
		if err := s.owners.Create(ctx, owner); err != nil {
			return nil, err
		}
		payload.OwnerID = owner.ID
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	principal := &auth.Principal{Subject: user.Username, UserID: user.ID, Roles: user.Roles}
	s.events.publish(ctx, events.EventUserRegistered, user.ID, principal, payload)
	return result, nil
}

// Login verifies credentials. Every failure reads as invalid credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if !user.Enabled || !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, apperrors.NewInvalidCredentials()
	}
	return s.issue(user)
}

// ChangePassword replaces the caller's password after checking the current one.
// Tokens issued earlier stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, principal *auth.Principal, currentPassword, newPassword string) error {
	if err := auth.RequireAuthenticated(principal); err != nil {
		return err
	}

	errs := fieldErrors{}
	errs.require("currentPassword", currentPassword)
	errs.require("newPassword", newPassword)
	errs.length("newPassword", newPassword, minPasswordLen, 0)
	if err := errs.err(); err != nil {
		return err
	}

	user, err := s.users.GetByUsername(ctx, principal.Subject)
	if err != nil {
		return err
	}
	if !auth.PasswordMatches(user.PasswordHash, currentPassword) {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// EnsureAdmin makes sure username exists with roles USER and ADMIN.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}

	adminRoles := []domain.Role{domain.RoleAdmin, domain.RoleUser}
	user, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if user.HasRole(domain.RoleAdmin) && user.HasRole(domain.RoleUser) {
			return nil
		}
		s.logger.Info("granting admin role", zap.String("username", username))
		return s.users.SetRoles(ctx, user.ID, adminRoles)
	case !apperrors.IsNotFound(err):
		return err
	}

	if password == "" {
		return errors.New("admin password required to create admin user")
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	s.logger.Info("creating admin user", zap.String("username", username))
	return s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Enabled:      true,
		Roles:        adminRoles,
	})
}

func (s *AuthService) checkOwnerContact(ctx context.Context, email, phone string) error {
	if exists, err := s.owners.ExistsByEmail(ctx, email); err != nil {
		return err
	} else if exists {
		return apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
	}
	if phone == "" {
		return nil
	}
	if exists, err := s.owners.ExistsByPhone(ctx, phone); err != nil {
		return err
	} else if exists {
		return apperrors.NewConflict("phone already registered", map[string]any{"field": "phone"})
	}
	return nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}
