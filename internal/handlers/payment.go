package handlers

import (
	"errors"

	"paylater/internal/repositories"
	"paylater/internal/services/payment"
	"paylater/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Pay(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		PurchaseID uint  `json:"purchase_id"`
		Amount     int64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	remaining, err := h.paymentService.Pay(c.Context(), userID, input.PurchaseID, input.Amount)
	if err != nil {
		return response.LedgerError(c, err)
	}

	return c.JSON(fiber.Map{
		"remaining_balance": remaining,
	})
}

func (h *PaymentHandler) PayEarly(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid purchase id")
	}

	charged, err := h.paymentService.PayEarly(c.Context(), userID, uint(id))
	if err != nil {
		return response.LedgerError(c, err)
	}

	return c.JSON(fiber.Map{
		"paid":    true,
		"charged": charged,
	})
}

func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid payment id")
	}

	p, err := h.paymentService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return response.NotFound(c, "payment not found")
		}
		return response.ServerError(c, "failed to fetch payment")
	}
	return c.JSON(p)
}

func (h *PaymentHandler) Deposit(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		Amount int64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	balance, err := h.paymentService.Deposit(c.Context(), userID, input.Amount)
	if err != nil {
		return response.LedgerError(c, err)
	}

	return c.JSON(fiber.Map{
		"balance": balance,
	})
}
