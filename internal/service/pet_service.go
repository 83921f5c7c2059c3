package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository"
	apperrors "github.com/spec-kit/pet-service/pkg/util/errorutil"
)

// DateLayout is the wire format of dateOfBirth.
const DateLayout = "2006-01-02"

// PetService coordinates pet workflows.
type PetService struct {
	pets   repository.PetRepository
	owners repository.OwnerRepository
	events eventPublisher
	now    func() time.Time
}

// PetDependencies bundles repositories for the pet service.
type PetDependencies struct {
	PetRepo    repository.PetRepository
	OwnerRepo  repository.OwnerRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// PetQuery holds raw listing parameters.
type PetQuery struct {
	Search  string
	Type    string
	OwnerID string
}

// PetInput describes pet create and update payloads.
type PetInput struct {
	OwnerID     string
	Name        string
	Type        string
	Breed       string
	DateOfBirth string
	Color       string
	Description string
}

// NewPetService constructs the service.
func NewPetService(deps PetDependencies) *PetService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &PetService{
		pets:   deps.PetRepo,
		owners: deps.OwnerRepo,
		events: newEventPublisher(deps.Dispatcher, deps.Logger),
		now:    now,
	}
}

// Now returns the service clock, used for age computation.
func (s *PetService) Now() time.Time {
	return s.now()
}

// List returns pets filtered by q.
func (s *PetService) List(ctx context.Context, q PetQuery) ([]domain.Pet, error) {
	filter := repository.PetFilter{Search: strings.TrimSpace(q.Search)}
	if t := strings.TrimSpace(q.Type); t != "" {
		petType, err := domain.ParsePetType(t)
		if err != nil {
			return nil, apperrors.NewValidationError("validation failed", map[string]any{"type": err.Error()})
		}
		filter.Type = &petType
	}
	if raw := strings.TrimSpace(q.OwnerID); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return nil, apperrors.NewValidationError("validation failed", map[string]any{"ownerId": "must be a valid id"})
		}
		filter.OwnerID = &id
	}
	pets, err := s.pets.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if pets == nil {
		pets = []domain.Pet{}
	}
	return pets, nil
}

// Mine returns the pets of the caller's owner profile.
func (s *PetService) Mine(ctx context.Context, principal *auth.Principal) ([]domain.Pet, error) {
	if err := auth.RequireAuthenticated(principal); err != nil {
		return nil, err
	}
	owner, err := s.owners.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("owner profile", map[string]any{"username": principal.Subject})
		}
		return nil, err
	}
	return s.List(ctx, PetQuery{OwnerID: owner.ID})
}

// Get returns one pet.
func (s *PetService) Get(ctx context.Context, id string) (*domain.Pet, error) {
	petID, ok := parseID(id)
	if !ok {
		return nil, apperrors.NewNotFound("pet", map[string]any{"id": id})
	}
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("pet", map[string]any{"id": id})
		}
		return nil, err
	}
	return pet, nil
}

// Create registers a pet for an owner the caller owns, or any owner for admins.
func (s *PetService) Create(ctx context.Context, principal *auth.Principal, in PetInput) (*domain.Pet, error) {
	if err := auth.RequireAuthenticated(principal); err != nil {
		return nil, err
	}
	pet := &domain.Pet{}
	if err := s.parseInput(in, pet); err != nil {
		return nil, err
	}
	owner, err := s.authorizeOwner(ctx, principal, pet.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, err
	}
	pet.OwnerName = owner.FullName()
	s.events.publish(ctx, events.EventPetCreated, pet.ID, principal,
		events.PetPayload{OwnerID: pet.OwnerID, Name: pet.Name, Type: pet.Type})
	return pet, nil
}

// Update edits a pet. Moving it to another owner requires rights on both owners.
func (s *PetService) Update(ctx context.Context, principal *auth.Principal, id string, in PetInput) (*domain.Pet, error) {
	if err := auth.RequireAuthenticated(principal); err != nil {
		return nil, err
	}
	pet, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	subject, err := s.pets.OwnerSubject(ctx, pet.ID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(principal, subject); err != nil {
		return nil, err
	}

	previousOwner := pet.OwnerID
	if err := s.parseInput(in, pet); err != nil {
		return nil, err
	}
	if pet.OwnerID != previousOwner {
		owner, err := s.authorizeOwner(ctx, principal, pet.OwnerID)
		if err != nil {
			return nil, err
		}
		pet.OwnerName = owner.FullName()
	}

	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	payload := events.PetPayload{OwnerID: pet.OwnerID, Name: pet.Name, Type: pet.Type}
	if pet.OwnerID != previousOwner {
		payload.PreviousOwnerID = previousOwner
	}
	s.events.publish(ctx, events.EventPetUpdated, pet.ID, principal, payload)
	return pet, nil
}

// Delete removes a pet. Admin only.
func (s *PetService) Delete(ctx context.Context, principal *auth.Principal, id string) error {
	if err := auth.RequireAdmin(principal); err != nil {
		return err
	}
	pet, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.pets.Delete(ctx, pet.ID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("pet", map[string]any{"id": id})
		}
		return err
	}
	s.events.publish(ctx, events.EventPetDeleted, pet.ID, principal,
		events.PetPayload{OwnerID: pet.OwnerID, Name: pet.Name, Type: pet.Type})
	return nil
}

func (s *PetService) authorizeOwner(ctx context.Context, principal *auth.Principal, ownerID string) (*domain.Owner, error) {
	if _, ok := parseID(ownerID); !ok {
		return nil, apperrors.NewNotFound("owner", map[string]any{"id": ownerID})
	}
	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("owner", map[string]any{"id": ownerID})
		}
		return nil, err
	}
	subject, err := s.owners.OwnerSubject(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(principal, subject); err != nil {
		return nil, err
	}
	return owner, nil
}

// parseInput validates in and copies it onto pet.
func (s *PetService) parseInput(in PetInput, pet *domain.Pet) error {
	errs := fieldErrors{}
	name := strings.TrimSpace(in.Name)
	errs.require("name", name)
	errs.length("name", name, 1, 50)
	errs.require("ownerId", in.OwnerID)

	petType, err := domain.ParsePetType(in.Type)
	if err != nil {
		errs.add("type", "must be one of DOG, CAT, BIRD, FISH, RABBIT, HAMSTER, OTHER")
	}

	var dob time.Time
	if strings.TrimSpace(in.DateOfBirth) == "" {
		errs.require("dateOfBirth", in.DateOfBirth)
	} else if dob, err = time.Parse(DateLayout, strings.TrimSpace(in.DateOfBirth)); err != nil {
		errs.add("dateOfBirth", "must be a date in YYYY-MM-DD format")
	} else if !dob.Before(s.now()) {
		errs.add("dateOfBirth", "must be in the past")
	}

	errs.length("breed", in.Breed, 0, 50)
	errs.length("color", in.Color, 0, 30)
	errs.length("description", in.Description, 0, 500)
	if err := errs.err(); err != nil {
		return err
	}

	pet.OwnerID = strings.TrimSpace(in.OwnerID)
	if id, ok := parseID(pet.OwnerID); ok {
		pet.OwnerID = id
	}
	pet.Name = name
	pet.Type = petType
	pet.Breed = strings.TrimSpace(in.Breed)
	pet.DateOfBirth = dob
	pet.Color = strings.TrimSpace(in.Color)
	pet.Description = strings.TrimSpace(in.Description)
	return nil
}
