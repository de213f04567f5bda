package account

import (
	"context"
	"testing"

	"paylater/internal/ledger"
	"paylater/internal/models"
	"paylater/internal/repositories/memory"
	"paylater/internal/services/credit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewService(memory.NewStore(), nil, credit.DefaultPolicy(), nil)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	id, err := svc.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)
	assert.Equal(t, uint(1), id, "first account gets id 1")

	id2, err := svc.Create(ctx, 2, models.AccountTypeCodeMerchant, "Merchant LLC", "merchant@example.com", "+1234567891")
	require.NoError(t, err)
	assert.Equal(t, uint(2), id2, "ids are sequential")
}

func TestService_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)

	_, err = svc.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe 2", "john2@example.com", "+1234567890")
	assert.ErrorIs(t, err, ledger.ErrAccountExists)
	code, ok := ledger.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, 101, code)
}

func TestService_Create_InvalidType(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Create(ctx, 1, 5, "John Doe", "john@example.com", "+1234567890")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestService_Create_Defaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)

	acc, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.AccountTypeConsumer, acc.AccountType)
	assert.Equal(t, 650, acc.CreditScore)
	assert.Equal(t, int64(6_500_000), acc.AvailableCredit)
	assert.Equal(t, int64(0), acc.Balance)
	assert.True(t, acc.IsActive)
	assert.False(t, acc.KYCVerified)
}

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), 42)
	assert.Error(t, err)
}

func TestService_Exists(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	exists, err := svc.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)

	exists, err = svc.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestService_SetupAutopay(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	err := svc.SetupAutopay(ctx, 1, "bank-account-123", "backup-account-456")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound, "no account yet")

	_, err = svc.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)

	assert.NoError(t, svc.SetupAutopay(ctx, 1, "bank-account-123", "backup-account-456"))
	// Re-running overwrites rather than failing.
	assert.NoError(t, svc.SetupAutopay(ctx, 1, "bank-account-789", ""))
}

func TestService_VerifyKYC(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	admin := models.Caller{UserID: 99, Role: models.RoleAdmin}
	user := models.Caller{UserID: 2, Role: models.RoleUser}

	_, err := svc.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)

	err = svc.VerifyKYC(ctx, user, 1)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)

	err = svc.VerifyKYC(ctx, admin, 42)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	require.NoError(t, svc.VerifyKYC(ctx, admin, 1))
	acc, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, acc.KYCVerified)
}

func TestService_Suspend(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	admin := models.Caller{UserID: 99, Role: models.RoleAdmin}

	_, err := svc.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)

	err = svc.Suspend(ctx, models.Caller{UserID: 2, Role: models.RoleUser}, 1)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)

	require.NoError(t, svc.Suspend(ctx, admin, 1))
	acc, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, acc.IsActive)
}
