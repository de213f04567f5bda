package handlers

import (
	"paylater/internal/services/credit"
	"paylater/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CreditHandler struct {
	creditService credit.Service
}

func NewCreditHandler(creditService credit.Service) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

func (h *CreditHandler) Score(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	score, err := h.creditService.Score(c.Context(), uint(userID))
	if err != nil {
		return response.ServerError(c, "failed to fetch credit score")
	}
	return c.JSON(fiber.Map{"credit_score": score})
}

func (h *CreditHandler) Available(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	available, err := h.creditService.AvailableCredit(c.Context(), uint(userID))
	if err != nil {
		return response.ServerError(c, "failed to fetch available credit")
	}
	return c.JSON(fiber.Map{"available_credit": available})
}
