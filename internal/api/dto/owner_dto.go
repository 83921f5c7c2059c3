package dto

import (
	"time"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/service"
)

// OwnerRequest payload for owner create and update.
type OwnerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// OwnerResponse describes an owner, optionally with pets.
type OwnerResponse struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	FullName  string        `json:"fullName"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Address   string        `json:"address,omitempty"`
	UserID    *string       `json:"userId,omitempty"`
	PetCount  int           `json:"petCount"`
	Pets      []PetResponse `json:"pets"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Input converts the request to service input.
func (r OwnerRequest) Input() service.OwnerInput {
	return service.OwnerInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
	}
}

// NewOwnerResponse maps an owner with its pets.
func NewOwnerResponse(owner *domain.Owner, pets []domain.Pet, now time.Time) OwnerResponse {
	return OwnerResponse{
		ID:        owner.ID,
		FirstName: owner.FirstName,
		LastName:  owner.LastName,
		FullName:  owner.FullName(),
		Email:     owner.Email,
		Phone:     owner.Phone,
		Address:   owner.Address,
		UserID:    owner.UserID,
		PetCount:  len(pets),
		Pets:      NewPetResponses(pets, now),
		CreatedAt: owner.CreatedAt,
		UpdatedAt: owner.UpdatedAt,
	}
}

// NewOwnerResponses maps owner details.
func NewOwnerResponses(details []service.OwnerDetails, now time.Time) []OwnerResponse {
	out := make([]OwnerResponse, 0, len(details))
	for i := range details {
		out = append(out, NewOwnerResponse(&details[i].Owner, details[i].Pets, now))
	}
	return out
}
