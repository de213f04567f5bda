package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	// Codes are wire contract; a change here breaks every client.
	assert.Equal(t, 100, ErrUnauthorized.Code)
	assert.Equal(t, 101, ErrAccountExists.Code)
	assert.Equal(t, 102, ErrAccountNotFound.Code)
	assert.Equal(t, 103, ErrInsufficientBalance.Code)
	assert.Equal(t, 104, ErrInvalidAmount.Code)
	assert.Equal(t, 106, ErrCreditDeclined.Code)
	assert.Equal(t, 107, ErrInsufficientCredit.Code)
	assert.Equal(t, 109, ErrInvalidPaymentPlan.Code)
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(ErrInsufficientBalance)
	assert.True(t, ok)
	assert.Equal(t, 103, code)

	code, ok = CodeOf(fmt.Errorf("paying: %w", ErrInvalidAmount))
	assert.True(t, ok)
	assert.Equal(t, 104, code)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
	_, ok = CodeOf(nil)
	assert.False(t, ok)
}
