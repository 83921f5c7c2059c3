package dto

import (
	"time"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/service"
)

// PetRequest payload for pet create and update.
type PetRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Breed       string `json:"breed"`
	DateOfBirth string `json:"dateOfBirth"`
	Color       string `json:"color"`
	Description string `json:"description"`
	OwnerID     string `json:"ownerId"`
}

// PetResponse describes a pet.
type PetResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        domain.PetType `json:"type"`
	Breed       string         `json:"breed,omitempty"`
	DateOfBirth string         `json:"dateOfBirth"`
	Age         int            `json:"age"`
	Color       string         `json:"color,omitempty"`
	Description string         `json:"description,omitempty"`
	OwnerID     string         `json:"ownerId"`
	OwnerName   string         `json:"ownerName"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Input converts the request to service input.
func (r PetRequest) Input() service.PetInput {
	return service.PetInput{
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Type:        r.Type,
		Breed:       r.Breed,
		DateOfBirth: r.DateOfBirth,
		Color:       r.Color,
		Description: r.Description,
	}
}

// NewPetResponse maps a pet; age is computed at now.
func NewPetResponse(pet *domain.Pet, now time.Time) PetResponse {
	return PetResponse{
		ID:          pet.ID,
		Name:        pet.Name,
		Type:        pet.Type,
		Breed:       pet.Breed,
		DateOfBirth: pet.DateOfBirth.Format(service.DateLayout),
		Age:         pet.AgeAt(now),
		Color:       pet.Color,
		Description: pet.Description,
		OwnerID:     pet.OwnerID,
		OwnerName:   pet.OwnerName,
		CreatedAt:   pet.CreatedAt,
		UpdatedAt:   pet.UpdatedAt,
	}
}

// NewPetResponses maps a list.
func NewPetResponses(pets []domain.Pet, now time.Time) []PetResponse {
	out := make([]PetResponse, 0, len(pets))
	for i := range pets {
		out = append(out, NewPetResponse(&pets[i], now))
	}
	return out
}
