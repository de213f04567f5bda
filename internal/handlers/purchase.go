package handlers

import (
	"errors"

	"paylater/internal/repositories"
	"paylater/internal/services/purchase"
	"paylater/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	purchaseService purchase.Service
}

func NewPurchaseHandler(purchaseService purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

func (h *PurchaseHandler) Make(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		Amount      int64  `json:"amount"`
		PaymentPlan int    `json:"payment_plan"`
		MerchantID  *uint  `json:"merchant_id"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	purchaseID, err := h.purchaseService.Make(c.Context(), userID, purchase.MakeRequest{
		Amount:      input.Amount,
		Plan:        input.PaymentPlan,
		MerchantID:  input.MerchantID,
		Description: input.Description,
	})
	if err != nil {
		return response.LedgerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"purchase_id": purchaseID,
	})
}

func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid purchase id")
	}

	p, err := h.purchaseService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return response.NotFound(c, "purchase not found")
		}
		return response.ServerError(c, "failed to fetch purchase")
	}
	return c.JSON(p)
}

func (h *PurchaseHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	ids, err := h.purchaseService.ListIDs(c.Context(), uint(userID))
	if err != nil {
		return response.ServerError(c, "failed to list purchases")
	}
	if ids == nil {
		ids = []uint{}
	}
	return c.JSON(fiber.Map{"purchase_ids": ids})
}
