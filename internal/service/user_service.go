package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository"
	apperrors "github.com/spec-kit/pet-service/pkg/util/errorutil"
)

// UserService manages the caller's own account and admin role grants.
type UserService struct {
	users  repository.UserRepository
	owners repository.OwnerRepository
	events eventPublisher
}

// UserDependencies bundles repositories for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	OwnerRepo  repository.OwnerRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// Profile is a user together with its linked owner, if any.
type Profile struct {
	User  *domain.User
	Owner *domain.Owner
}

// ProfileUpdateInput describes PUT /api/users/me.
type ProfileUpdateInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:  deps.UserRepo,
		owners: deps.OwnerRepo,
		events: newEventPublisher(deps.Dispatcher, deps.Logger),
	}
}

// Profile returns the caller's account.
func (s *UserService) Profile(ctx context.Context, principal *auth.Principal) (*Profile, error) {
	if err := auth.RequireAuthenticated(principal); err != nil {
		return nil, err
	}
	user, err := s.users.GetByUsername(ctx, principal.Subject)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": principal.Subject})
		}
		return nil, err
	}
	owner, err := s.linkedOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Owner: owner}, nil
}

// UpdateProfile changes the caller's email and upserts the linked owner.
// Every uniqueness check runs before the first write.
func (s *UserService) UpdateProfile(ctx context.Context, principal *auth.Principal, in ProfileUpdateInput) (*Profile, error) {
	profile, err := s.Profile(ctx, principal)
	if err != nil {
		return nil, err
	}

	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	errs := fieldErrors{}
	errs.email("email", in.Email)
	errs.phone("phone", in.Phone)
	if profile.Owner == nil && (in.FirstName != "" || in.LastName != "") {
		errs.require("firstName", in.FirstName)
		errs.require("lastName", in.LastName)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	user := profile.User
	emailChanged := in.Email != user.Email
	if emailChanged {
		if exists, err := s.users.ExistsByEmail(ctx, in.Email); err != nil {
			return nil, err
		} else if exists {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
		}
	}

	owner := profile.Owner
	createOwner := owner == nil && strings.TrimSpace(in.FirstName) != ""
	if createOwner {
		owner = &domain.Owner{UserID: &user.ID}
	}
	if owner != nil {
		if err := s.checkContactChange(ctx, owner, in.Email, in.Phone); err != nil {
			return nil, err
		}
	}

	if emailChanged {
		user.Email = in.Email
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	switch {
	case createOwner:
		applyProfile(owner, in)
		if err := s.owners.Create(ctx, owner); err != nil {
			return nil, err
		}
		s.events.publish(ctx, events.EventOwnerCreated, owner.ID, principal,
			events.OwnerPayload{FullName: owner.FullName(), Email: owner.Email})
	case owner != nil:
		applyProfile(owner, in)
		if err := s.owners.Update(ctx, owner); err != nil {
			return nil, err
		}
		s.events.publish(ctx, events.EventOwnerUpdated, owner.ID, principal,
			events.OwnerPayload{FullName: owner.FullName(), Email: owner.Email})
	}

	return &Profile{User: user, Owner: owner}, nil
}

// SetRoles replaces the role set of username. Admin only.
func (s *UserService) SetRoles(ctx context.Context, principal *auth.Principal, username string, roleNames []string) (*domain.User, error) {
	if err := auth.RequireAdmin(principal); err != nil {
		return nil, err
	}
	if len(roleNames) == 0 {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{"roles": "must not be empty"})
	}
	roles, err := domain.ParseRoles(roleNames)
	if err != nil {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{"roles": err.Error()})
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, err
	}
	if err := s.users.SetRoles(ctx, user.ID, roles); err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func (s *UserService) linkedOwner(ctx context.Context, userID string) (*domain.Owner, error) {
	owner, err := s.owners.GetByUserID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return owner, nil
}

func (s *UserService) checkContactChange(ctx context.Context, owner *domain.Owner, email, phone string) error {
	if !strings.EqualFold(owner.Email, email) {
		if exists, err := s.owners.ExistsByEmail(ctx, email); err != nil {
			return err
		} else if exists {
			return apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
		}
	}
	if phone != "" && phone != owner.Phone {
		if exists, err := s.owners.ExistsByPhone(ctx, phone); err != nil {
			return err
		} else if exists {
			return apperrors.NewConflict("phone already registered", map[string]any{"field": "phone"})
		}
	}
	return nil
}

func applyProfile(owner *domain.Owner, in ProfileUpdateInput) {
	owner.Email = in.Email
	if v := strings.TrimSpace(in.FirstName); v != "" {
		owner.FirstName = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		owner.LastName = v
	}
	if in.Phone != "" {
		owner.Phone = in.Phone
	}
	if v := strings.TrimSpace(in.Address); v != "" {
		owner.Address = v
	}
}
