package handlers

import (
	"errors"

	"paylater/internal/repositories"
	"paylater/internal/services/merchant"
	"paylater/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type MerchantHandler struct {
	merchantService merchant.Service
}

func NewMerchantHandler(merchantService merchant.Service) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

func (h *MerchantHandler) Register(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		BusinessName  string `json:"business_name"`
		MonthlyVolume int64  `json:"monthly_volume"`
		BankAccount   string `json:"bank_account"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.BusinessName == "" {
		return response.BadRequest(c, "business name is required")
	}

	m, err := h.merchantService.Register(c.Context(), userID, merchant.RegisterRequest{
		BusinessName:  input.BusinessName,
		MonthlyVolume: input.MonthlyVolume,
		BankAccount:   input.BankAccount,
	})
	if err != nil {
		return response.LedgerError(c, err)
	}

	return response.Success(c, "merchant registered", m)
}

func (h *MerchantHandler) Get(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	m, err := h.merchantService.Get(c.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return response.NotFound(c, "merchant not found")
		}
		return response.ServerError(c, "failed to fetch merchant")
	}
	return c.JSON(m)
}
