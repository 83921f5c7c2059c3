package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pet-service/internal/api/dto"
	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/service"
)

// OwnersHandler exposes /api/owners.
type OwnersHandler struct {
	owners *service.OwnerService
	clock  Clock
}

// NewOwnersHandler constructs handler.
func NewOwnersHandler(owners *service.OwnerService, clock Clock) *OwnersHandler {
	return &OwnersHandler{owners: owners, clock: clockOrDefault(clock)}
}

// List handles GET /api/owners.
func (h *OwnersHandler) List(c *fiber.Ctx) error {
	details, err := h.owners.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOwnerResponses(details, h.clock())})
}

// Get handles GET /api/owners/:id.
func (h *OwnersHandler) Get(c *fiber.Ctx) error {
	details, err := h.owners.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOwnerResponse(&details.Owner, details.Pets, h.clock())})
}

// Pets handles GET /api/owners/:id/pets.
func (h *OwnersHandler) Pets(c *fiber.Ctx) error {
	pets, err := h.owners.Pets(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPetResponses(pets, h.clock())})
}

// Create handles POST /api/owners.
func (h *OwnersHandler) Create(c *fiber.Ctx) error {
	var req dto.OwnerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	principal, _ := auth.PrincipalFromContext(c)
	owner, err := h.owners.Create(c.UserContext(), principal, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOwnerResponse(owner, nil, h.clock())})
}

// Update handles PUT /api/owners/:id.
func (h *OwnersHandler) Update(c *fiber.Ctx) error {
	var req dto.OwnerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	principal, _ := auth.PrincipalFromContext(c)
	owner, err := h.owners.Update(c.UserContext(), principal, c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOwnerResponse(owner, nil, h.clock())})
}

// Delete handles DELETE /api/owners/:id.
func (h *OwnersHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if err := h.owners.Delete(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
