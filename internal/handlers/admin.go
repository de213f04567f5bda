package handlers

import (
	"paylater/internal/middleware"
	"paylater/internal/services/account"
	"paylater/internal/services/merchant"
	"paylater/internal/services/purchase"
	"paylater/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the privileged controller operations. Role
// enforcement happens inside the services so the numeric error codes
// stay consistent across transports.
type AdminHandler struct {
	accountService  account.Service
	merchantService merchant.Service
	purchaseService purchase.Service
}

func NewAdminHandler(accountService account.Service, merchantService merchant.Service, purchaseService purchase.Service) *AdminHandler {
	return &AdminHandler{
		accountService:  accountService,
		merchantService: merchantService,
		purchaseService: purchaseService,
	}
}

func (h *AdminHandler) VerifyKYC(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "missing claims")
	}
	target, err := c.ParamsInt("userID")
	if err != nil || target <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	if err := h.accountService.VerifyKYC(c.Context(), claims.Caller(), uint(target)); err != nil {
		return response.LedgerError(c, err)
	}
	return response.Success(c, "kyc verified", true)
}

func (h *AdminHandler) VerifyMerchant(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "missing claims")
	}
	target, err := c.ParamsInt("userID")
	if err != nil || target <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	if err := h.merchantService.Verify(c.Context(), claims.Caller(), uint(target)); err != nil {
		return response.LedgerError(c, err)
	}
	return response.Success(c, "merchant verified", true)
}

func (h *AdminHandler) SuspendAccount(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "missing claims")
	}
	target, err := c.ParamsInt("userID")
	if err != nil || target <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	if err := h.accountService.Suspend(c.Context(), claims.Caller(), uint(target)); err != nil {
		return response.LedgerError(c, err)
	}
	return response.Success(c, "account suspended", true)
}

func (h *AdminHandler) DefaultPurchase(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "missing claims")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid purchase id")
	}

	if err := h.purchaseService.MarkDefaulted(c.Context(), claims.Caller(), uint(id)); err != nil {
		return response.LedgerError(c, err)
	}
	return response.Success(c, "purchase defaulted", true)
}
