package credit

import (
	"context"
	"testing"

	"paylater/internal/models"
	"paylater/internal/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_NoAccountIsZero(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	score, err := svc.Score(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, score, "missing account reads as score 0, not an error")

	available, err := svc.AvailableCredit(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), available)
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store)

	require.NoError(t, store.Accounts().Create(ctx, &models.Account{
		UserID:          1,
		AccountType:     models.AccountTypeConsumer,
		CreditScore:     models.DefaultCreditScore,
		AvailableCredit: 6_500_000,
		IsActive:        true,
	}))

	score, err := svc.Score(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 650, score)

	available, err := svc.AvailableCredit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6_500_000), available)
}
