package handlers

import (
	"errors"

	"paylater/internal/repositories"
	"paylater/internal/services/account"
	"paylater/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	accountService account.Service
}

func NewAccountHandler(accountService account.Service) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		AccountType int    `json:"account_type"`
		FullName    string `json:"full_name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	accountID, err := h.accountService.Create(c.Context(), userID, input.AccountType, input.FullName, input.Email, input.Phone)
	if err != nil {
		return response.LedgerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"account_id": accountID,
	})
}

func (h *AccountHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	return h.getAccount(c, userID)
}

func (h *AccountHandler) Get(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "invalid user id")
	}
	return h.getAccount(c, uint(userID))
}

func (h *AccountHandler) getAccount(c *fiber.Ctx, userID uint) error {
	acc, err := h.accountService.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return response.NotFound(c, "account not found")
		}
		return response.ServerError(c, "failed to fetch account")
	}
	return c.JSON(acc)
}

func (h *AccountHandler) Exists(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	exists, err := h.accountService.Exists(c.Context(), uint(userID))
	if err != nil {
		return response.ServerError(c, "failed to check account")
	}
	return c.JSON(fiber.Map{"exists": exists})
}

func (h *AccountHandler) SetupAutopay(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		PrimaryAccount string `json:"primary_account"`
		BackupAccount  string `json:"backup_account"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.PrimaryAccount == "" {
		return response.BadRequest(c, "primary account is required")
	}

	if err := h.accountService.SetupAutopay(c.Context(), userID, input.PrimaryAccount, input.BackupAccount); err != nil {
		return response.LedgerError(c, err)
	}
	return response.Success(c, "autopay configured", true)
}
