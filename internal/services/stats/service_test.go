package stats

import (
	"context"
	"testing"

	"paylater/internal/models"
	"paylater/internal/repositories/memory"
	"paylater/internal/services/account"
	"paylater/internal/services/credit"
	"paylater/internal/services/payment"
	"paylater/internal/services/purchase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = models.Caller{UserID: 99, Role: models.RoleAdmin}

type fixture struct {
	accounts  account.Service
	purchases purchase.Service
	payments  payment.Service
	stats     Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	policy := credit.DefaultPolicy()
	return &fixture{
		accounts:  account.NewService(store, nil, policy, nil),
		purchases: purchase.NewService(store, nil, policy, nil),
		payments:  payment.NewService(store, nil, policy, nil),
		stats:     NewService(store, policy),
	}
}

func TestService_Platform_Empty(t *testing.T) {
	f := newFixture(t)

	out, err := f.stats.Platform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PlatformStats{}, out)
}

func TestService_Platform(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.accounts.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)
	require.NoError(t, f.accounts.VerifyKYC(ctx, admin, 1))

	_, err = f.purchases.Make(ctx, 1, purchase.MakeRequest{Amount: 1_000_000, Plan: 4})
	require.NoError(t, err)

	out, err := f.stats.Platform(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.TotalPurchases)
	assert.Equal(t, int64(1_000_000), out.TotalOutstanding)
	assert.Equal(t, int64(0), out.PlatformRevenue)
	assert.Equal(t, int64(1), out.TotalAccounts)
}

func TestService_Platform_AfterPayments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.accounts.Create(ctx, 1, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)
	require.NoError(t, f.accounts.VerifyKYC(ctx, admin, 1))
	_, err = f.accounts.Create(ctx, 2, models.AccountTypeCodeMerchant, "Merchant LLC", "merchant@example.com", "+1234567891")
	require.NoError(t, err)

	pID, err := f.purchases.Make(ctx, 1, purchase.MakeRequest{Amount: 1_000_000, Plan: 4})
	require.NoError(t, err)

	_, err = f.payments.Deposit(ctx, 1, 500_000)
	require.NoError(t, err)
	remaining, err := f.payments.Pay(ctx, 1, pID, 250_000)
	require.NoError(t, err)
	require.Equal(t, int64(750_000), remaining)

	out, err := f.stats.Platform(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.TotalPurchases)
	assert.Equal(t, int64(750_000), out.TotalOutstanding, "outstanding shrinks with each payment")
	// 200 bps of the 250_000 payment volume.
	assert.Equal(t, int64(5_000), out.PlatformRevenue)
	assert.Equal(t, int64(2), out.TotalAccounts)
}
