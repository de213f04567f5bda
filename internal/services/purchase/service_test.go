package purchase

import (
	"context"
	"testing"

	"paylater/internal/ledger"
	"paylater/internal/models"
	"paylater/internal/repositories/memory"
	"paylater/internal/services/account"
	"paylater/internal/services/credit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = models.Caller{UserID: 99, Role: models.RoleAdmin}

type fixture struct {
	store     *memory.Store
	accounts  account.Service
	purchases Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	policy := credit.DefaultPolicy()
	return &fixture{
		store:     store,
		accounts:  account.NewService(store, nil, policy, nil),
		purchases: NewService(store, nil, policy, nil),
	}
}

// newConsumer creates a KYC-verified consumer account for userID.
func (f *fixture) newConsumer(t *testing.T, userID uint) {
	t.Helper()
	ctx := context.Background()
	_, err := f.accounts.Create(ctx, userID, models.AccountTypeCodeConsumer, "John Doe", "john@example.com", "+1234567890")
	require.NoError(t, err)
	require.NoError(t, f.accounts.VerifyKYC(ctx, admin, userID))
}

func TestService_Make(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newConsumer(t, 1)

	merchantID := uint(7)
	id, err := f.purchases.Make(ctx, 1, MakeRequest{
		Amount:      1_000_000,
		Plan:        4,
		MerchantID:  &merchantID,
		Description: "Test purchase",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	p, err := f.purchases.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ConsumerID)
	assert.Equal(t, int64(1_000_000), p.Amount)
	assert.Equal(t, int64(1_000_000), p.RemainingBalance)
	assert.Equal(t, 4, p.PaymentPlan)
	assert.Equal(t, models.PurchaseStatusActive, p.Status)
	require.NotNil(t, p.MerchantID)
	assert.Equal(t, merchantID, *p.MerchantID)

	acc, err := f.accounts.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5_500_000), acc.AvailableCredit, "credit debited by purchase amount")
}

func TestService_Make_WithoutMerchant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newConsumer(t, 1)

	id, err := f.purchases.Make(ctx, 1, MakeRequest{Amount: 1_000_000, Plan: 4, Description: "Direct purchase"})
	require.NoError(t, err)

	p, err := f.purchases.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, p.MerchantID)
}

func TestService_Make_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(*testing.T, *fixture)
		req     MakeRequest
		wantErr *ledger.Error
	}{
		{
			name:    "amount below minimum",
			setup:   func(t *testing.T, f *fixture) { f.newConsumer(t, 1) },
			req:     MakeRequest{Amount: 50_000, Plan: 4},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:    "invalid payment plan",
			setup:   func(t *testing.T, f *fixture) { f.newConsumer(t, 1) },
			req:     MakeRequest{Amount: 1_000_000, Plan: 8},
			wantErr: ledger.ErrInvalidPaymentPlan,
		},
		{
			name: "plan checked before kyc",
			setup: func(t *testing.T, f *fixture) {
				_, err := f.accounts.Create(ctx, 1, models.AccountTypeCodeConsumer, "Jane Doe", "jane@example.com", "+1")
				require.NoError(t, err)
			},
			req:     MakeRequest{Amount: 1_000_000, Plan: 8},
			wantErr: ledger.ErrInvalidPaymentPlan,
		},
		{
			name:    "no account",
			setup:   func(*testing.T, *fixture) {},
			req:     MakeRequest{Amount: 1_000_000, Plan: 4},
			wantErr: ledger.ErrAccountNotFound,
		},
		{
			name: "kyc not verified",
			setup: func(t *testing.T, f *fixture) {
				_, err := f.accounts.Create(ctx, 1, models.AccountTypeCodeConsumer, "Jane Doe", "jane@example.com", "+1")
				require.NoError(t, err)
			},
			req:     MakeRequest{Amount: 1_000_000, Plan: 4},
			wantErr: ledger.ErrCreditDeclined,
		},
		{
			name:    "insufficient credit",
			setup:   func(t *testing.T, f *fixture) { f.newConsumer(t, 1) },
			req:     MakeRequest{Amount: 999_999_999_999, Plan: 4},
			wantErr: ledger.ErrInsufficientCredit,
		},
		{
			name: "suspended account",
			setup: func(t *testing.T, f *fixture) {
				f.newConsumer(t, 1)
				require.NoError(t, f.accounts.Suspend(ctx, admin, 1))
			},
			req:     MakeRequest{Amount: 1_000_000, Plan: 4},
			wantErr: ledger.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			_, err := f.purchases.Make(ctx, 1, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Make_FailureLeavesCreditUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newConsumer(t, 1)

	_, err := f.purchases.Make(ctx, 1, MakeRequest{Amount: 999_999_999_999, Plan: 4})
	require.ErrorIs(t, err, ledger.ErrInsufficientCredit)

	acc, err := f.accounts.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6_500_000), acc.AvailableCredit)
}

func TestService_Get_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.purchases.Get(context.Background(), 999)
	assert.Error(t, err)
}

func TestService_ListIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newConsumer(t, 1)

	ids, err := f.purchases.ListIDs(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = f.purchases.Make(ctx, 1, MakeRequest{Amount: 1_000_000, Plan: 4, Description: "First purchase"})
	require.NoError(t, err)
	_, err = f.purchases.Make(ctx, 1, MakeRequest{Amount: 2_000_000, Plan: 6, Description: "Second purchase"})
	require.NoError(t, err)

	ids, err = f.purchases.ListIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, ids, "creation order")

	// Reads have no side effects.
	again, err := f.purchases.ListIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ids, again)
}

func TestService_MarkDefaulted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newConsumer(t, 1)

	id, err := f.purchases.Make(ctx, 1, MakeRequest{Amount: 1_000_000, Plan: 4})
	require.NoError(t, err)

	err = f.purchases.MarkDefaulted(ctx, models.Caller{UserID: 2, Role: models.RoleUser}, id)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)

	err = f.purchases.MarkDefaulted(ctx, admin, 999)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	require.NoError(t, f.purchases.MarkDefaulted(ctx, admin, id))

	p, err := f.purchases.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusDefaulted, p.Status)

	acc, err := f.accounts.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 575, acc.CreditScore, "default penalty applied")

	// Terminal status: defaulting twice is rejected.
	err = f.purchases.MarkDefaulted(ctx, admin, id)
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}
