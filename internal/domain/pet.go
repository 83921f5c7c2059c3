package domain

import (
	"fmt"
	"strings"
	"time"
)

// PetType enumerates supported animal kinds.
type PetType string

const (
	PetTypeDog     PetType = "DOG"
	PetTypeCat     PetType = "CAT"
	PetTypeBird    PetType = "BIRD"
	PetTypeFish    PetType = "FISH"
	PetTypeRabbit  PetType = "RABBIT"
	PetTypeHamster PetType = "HAMSTER"
	PetTypeOther   PetType = "OTHER"
)

// PetTypes lists every PetType in display order.
var PetTypes = []PetType{
	PetTypeDog,
	PetTypeCat,
	PetTypeBird,
	PetTypeFish,
	PetTypeRabbit,
	PetTypeHamster,
	PetTypeOther,
}

// ParsePetType validates a pet type name.
func ParsePetType(s string) (PetType, error) {
	t := PetType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range PetTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown pet type %q", s)
}

// Pet is the domain model for an animal registered to an owner.
type Pet struct {
	ID          string
	OwnerID     string
	OwnerName   string
	Name        string
	Type        PetType
	Breed       string
	DateOfBirth time.Time
	Color       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AgeAt returns the pet's age in whole years at the given instant.
func (p *Pet) AgeAt(now time.Time) int {
	if p == nil || p.DateOfBirth.IsZero() {
		return 0
	}
	years := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
