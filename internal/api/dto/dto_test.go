package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/service"
)

func TestNewPetResponse_Age(t *testing.T) {
	t.Parallel()
	pet := &domain.Pet{
		ID: "p-1", Name: "Rex", Type: domain.PetTypeDog, OwnerID: "o-1", OwnerName: "Alice Liddell",
		DateOfBirth: time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		now  time.Time
		want int
	}{
		{now: time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC), want: 0},
		{now: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), want: 1},
		{now: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), want: 4},
		{now: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), want: 0},
	}
	for _, tt := range tests {
		resp := NewPetResponse(pet, tt.now)
		assert.Equal(t, tt.want, resp.Age, tt.now)
		assert.Equal(t, "2020-02-29", resp.DateOfBirth)
		assert.Equal(t, "Alice Liddell", resp.OwnerName)
	}
}

func TestNewProfileResponse_WithoutOwner(t *testing.T) {
	t.Parallel()
	resp := NewProfileResponse(&service.Profile{User: &domain.User{
		ID: "u-1", Username: "alice", Roles: []domain.Role{domain.RoleUser},
	}})
	assert.Equal(t, []string{"USER"}, resp.Roles)
	assert.Empty(t, resp.OwnerID)
}

func TestNewOwnerResponse_EmptyPets(t *testing.T) {
	t.Parallel()
	resp := NewOwnerResponse(&domain.Owner{ID: "o-1", FirstName: "Alice", LastName: "Liddell"}, nil, time.Now())
	assert.Equal(t, "Alice Liddell", resp.FullName)
	assert.NotNil(t, resp.Pets)
	assert.Zero(t, resp.PetCount)
}
