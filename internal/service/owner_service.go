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

// OwnerService coordinates owner workflows.
type OwnerService struct {
	owners repository.OwnerRepository
	pets   repository.PetRepository
	events eventPublisher
}

// OwnerDependencies bundles repositories for the owner service.
type OwnerDependencies struct {
	OwnerRepo  repository.OwnerRepository
	PetRepo    repository.PetRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// OwnerInput describes owner create and update payloads.
type OwnerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// OwnerDetails is an owner with its pets.
type OwnerDetails struct {
	Owner domain.Owner
	Pets  []domain.Pet
}

// NewOwnerService constructs the service.
func NewOwnerService(deps OwnerDependencies) *OwnerService {
	return &OwnerService{
		owners: deps.OwnerRepo,
		pets:   deps.PetRepo,
		events: newEventPublisher(deps.Dispatcher, deps.Logger),
	}
}

// List returns owners matching search, each with its pets.
func (s *OwnerService) List(ctx context.Context, search string) ([]OwnerDetails, error) {
	owners, err := s.owners.List(ctx, search)
	if err != nil {
		return nil, err
	}
	if len(owners) == 0 {
		return []OwnerDetails{}, nil
	}

	pets, err := s.pets.List(ctx, repository.PetFilter{})
	if err != nil {
		return nil, err
	}
	byOwner := make(map[string][]domain.Pet, len(owners))
	for _, pet := range pets {
		byOwner[pet.OwnerID] = append(byOwner[pet.OwnerID], pet)
	}

	result := make([]OwnerDetails, 0, len(owners))
	for _, owner := range owners {
		result = append(result, OwnerDetails{Owner: owner, Pets: byOwner[owner.ID]})
	}
	return result, nil
}

// Get returns one owner with its pets.
func (s *OwnerService) Get(ctx context.Context, id string) (*OwnerDetails, error) {
	owner, err := s.getOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	pets, err := s.pets.List(ctx, repository.PetFilter{OwnerID: &owner.ID})
	if err != nil {
		return nil, err
	}
	return &OwnerDetails{Owner: *owner, Pets: pets}, nil
}

// Pets returns the pets of owner id.
func (s *OwnerService) Pets(ctx context.Context, id string) ([]domain.Pet, error) {
	details, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return details.Pets, nil
}

// Create registers an unlinked owner. Admin only.
func (s *OwnerService) Create(ctx context.Context, principal *auth.Principal, in OwnerInput) (*domain.Owner, error) {
	if err := auth.RequireAdmin(principal); err != nil {
		return nil, err
	}
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, nil, in); err != nil {
		return nil, err
	}

	owner := &domain.Owner{}
	in.apply(owner)
	if err := s.owners.Create(ctx, owner); err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.EventOwnerCreated, owner.ID, principal, ownerPayload(owner))
	return owner, nil
}

// Update edits an owner. Allowed for the linked user or an admin.
func (s *OwnerService) Update(ctx context.Context, principal *auth.Principal, id string, in OwnerInput) (*domain.Owner, error) {
	if err := auth.RequireAuthenticated(principal); err != nil {
		return nil, err
	}
	owner, err := s.getOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	subject, err := s.owners.OwnerSubject(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(principal, subject); err != nil {
		return nil, err
	}

	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, owner, in); err != nil {
		return nil, err
	}

	in.apply(owner)
	if err := s.owners.Update(ctx, owner); err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.EventOwnerUpdated, owner.ID, principal, ownerPayload(owner))
	return owner, nil
}

// Delete removes an owner and its pets. Admin only.
func (s *OwnerService) Delete(ctx context.Context, principal *auth.Principal, id string) error {
	if err := auth.RequireAdmin(principal); err != nil {
		return err
	}
	owner, err := s.getOwner(ctx, id)
	if err != nil {
		return err
	}
	if err := s.owners.Delete(ctx, owner.ID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("owner", map[string]any{"id": id})
		}
		return err
	}
	s.events.publish(ctx, events.EventOwnerDeleted, owner.ID, principal, ownerPayload(owner))
	return nil
}

func (s *OwnerService) getOwner(ctx context.Context, id string) (*domain.Owner, error) {
	ownerID, ok := parseID(id)
	if !ok {
		return nil, apperrors.NewNotFound("owner", map[string]any{"id": id})
	}
	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("owner", map[string]any{"id": id})
		}
		return nil, err
	}
	return owner, nil
}

// checkUnique rejects email or phone values held by another owner. current is nil on create.
func (s *OwnerService) checkUnique(ctx context.Context, current *domain.Owner, in OwnerInput) error {
	if current == nil || !strings.EqualFold(current.Email, in.Email) {
		if exists, err := s.owners.ExistsByEmail(ctx, in.Email); err != nil {
			return err
		} else if exists {
			return apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
		}
	}
	if in.Phone != "" && (current == nil || current.Phone != in.Phone) {
		if exists, err := s.owners.ExistsByPhone(ctx, in.Phone); err != nil {
			return err
		} else if exists {
			return apperrors.NewConflict("phone already registered", map[string]any{"field": "phone"})
		}
	}
	return nil
}

func (in OwnerInput) normalized() OwnerInput {
	return OwnerInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}
}

func (in OwnerInput) validate() error {
	errs := fieldErrors{}
	errs.require("firstName", in.FirstName)
	errs.length("firstName", in.FirstName, 1, 50)
	errs.require("lastName", in.LastName)
	errs.length("lastName", in.LastName, 1, 50)
	errs.email("email", in.Email)
	errs.phone("phone", in.Phone)
	errs.length("address", in.Address, 0, 255)
	return errs.err()
}

func (in OwnerInput) apply(owner *domain.Owner) {
	owner.FirstName = in.FirstName
	owner.LastName = in.LastName
	owner.Email = in.Email
	owner.Phone = in.Phone
	owner.Address = in.Address
}

func ownerPayload(owner *domain.Owner) events.OwnerPayload {
	return events.OwnerPayload{FullName: owner.FullName(), Email: owner.Email}
}
