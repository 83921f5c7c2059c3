package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pet-service/internal/api/dto"
	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/service"
)

// Clock supplies the current time for computed fields.
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// PetsHandler exposes /api/pets.
type PetsHandler struct {
	pets  *service.PetService
	clock Clock
}

// NewPetsHandler constructs handler.
func NewPetsHandler(pets *service.PetService) *PetsHandler {
	return &PetsHandler{pets: pets, clock: pets.Now}
}

// List handles GET /api/pets.
func (h *PetsHandler) List(c *fiber.Ctx) error {
	pets, err := h.pets.List(c.UserContext(), service.PetQuery{
		Search:  c.Query("search"),
		Type:    c.Query("type"),
		OwnerID: c.Query("ownerId"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPetResponses(pets, h.clock())})
}

// Mine handles GET /api/pets/my.
func (h *PetsHandler) Mine(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	pets, err := h.pets.Mine(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPetResponses(pets, h.clock())})
}

// Get handles GET /api/pets/:id.
func (h *PetsHandler) Get(c *fiber.Ctx) error {
	pet, err := h.pets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPetResponse(pet, h.clock())})
}

// Create handles POST /api/pets.
func (h *PetsHandler) Create(c *fiber.Ctx) error {
	var req dto.PetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	principal, _ := auth.PrincipalFromContext(c)
	pet, err := h.pets.Create(c.UserContext(), principal, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPetResponse(pet, h.clock())})
}

// Update handles PUT /api/pets/:id.
func (h *PetsHandler) Update(c *fiber.Ctx) error {
	var req dto.PetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	principal, _ := auth.PrincipalFromContext(c)
	pet, err := h.pets.Update(c.UserContext(), principal, c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPetResponse(pet, h.clock())})
}

// Delete handles DELETE /api/pets/:id.
func (h *PetsHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if err := h.pets.Delete(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
