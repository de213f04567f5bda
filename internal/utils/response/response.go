package response

import (
	"errors"

	"paylater/internal/ledger"
	"paylater/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// LedgerError maps an operation failure to an HTTP response. Coded
// ledger errors keep their numeric code in the body verbatim; plain
// lookup misses become 404s; anything else is a 500.
func LedgerError(c *fiber.Ctx, err error) error {
	if code, ok := ledger.CodeOf(err); ok {
		var le *ledger.Error
		errors.As(err, &le)
		return c.Status(httpStatusFor(code)).JSON(fiber.Map{
			"error": le.Message,
			"code":  code,
		})
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return NotFound(c, "not found")
	}
	return ServerError(c, "internal error")
}

func httpStatusFor(code int) int {
	switch code {
	case ledger.ErrUnauthorized.Code:
		return fiber.StatusForbidden
	case ledger.ErrAccountExists.Code:
		return fiber.StatusConflict
	case ledger.ErrAccountNotFound.Code:
		return fiber.StatusNotFound
	case ledger.ErrInsufficientBalance.Code:
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusBadRequest
	}
}
