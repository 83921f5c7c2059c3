package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pet-service/internal/service"
)

// StatisticsHandler exposes GET /api/statistics.
type StatisticsHandler struct {
	stats *service.StatisticsService
}

// NewStatisticsHandler constructs handler.
func NewStatisticsHandler(stats *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

// Summary returns registry counts.
func (h *StatisticsHandler) Summary(c *fiber.Ctx) error {
	stats, err := h.stats.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
