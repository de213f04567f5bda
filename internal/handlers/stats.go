package handlers

import (
	"paylater/internal/services/stats"
	"paylater/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	statsService stats.Service
}

func NewStatsHandler(statsService stats.Service) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Platform(c *fiber.Ctx) error {
	platformStats, err := h.statsService.Platform(c.Context())
	if err != nil {
		return response.ServerError(c, "failed to compute platform stats")
	}
	return c.JSON(platformStats)
}
