package memory

import (
	"context"
	"errors"
	"testing"

	"paylater/internal/models"
	"paylater/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for i, userID := range []uint{10, 20, 30} {
		account := &models.Account{UserID: userID, AccountType: models.AccountTypeConsumer}
		require.NoError(t, store.Accounts().Create(ctx, account))
		assert.Equal(t, uint(i+1), account.ID)
	}
}

func TestStore_AtomicRollback(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	account := &models.Account{UserID: 1, AccountType: models.AccountTypeConsumer, Balance: 100}
	require.NoError(t, store.Accounts().Create(ctx, account))

	boom := errors.New("boom")
	err := store.Atomic(ctx, func(tx repositories.Store) error {
		a, err := tx.Accounts().GetByUserID(ctx, 1)
		require.NoError(t, err)
		a.Balance = 0
		require.NoError(t, tx.Accounts().Update(ctx, a))
		require.NoError(t, tx.Purchases().Create(ctx, &models.Purchase{ConsumerID: 1, Amount: 50}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	a, err := store.Accounts().GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), a.Balance, "failed atomic block leaves no partial effect")

	count, err := store.Purchases().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_AtomicRollbackKeepsIDSequence(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.Atomic(ctx, func(tx repositories.Store) error {
		require.NoError(t, tx.Purchases().Create(ctx, &models.Purchase{ConsumerID: 1, Amount: 50}))
		return errors.New("boom")
	})
	require.Error(t, err)

	p := &models.Purchase{ConsumerID: 1, Amount: 50}
	require.NoError(t, store.Purchases().Create(ctx, p))
	assert.Equal(t, uint(1), p.ID, "rolled-back IDs are released with the snapshot")
}

func TestStore_NestedAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.Atomic(ctx, func(tx repositories.Store) error {
		return tx.Atomic(ctx, func(inner repositories.Store) error {
			return inner.Accounts().Create(ctx, &models.Account{UserID: 1})
		})
	})
	require.NoError(t, err)

	_, err = store.Accounts().GetByUserID(ctx, 1)
	assert.NoError(t, err)
}

func TestStore_CopySemantics(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Accounts().Create(ctx, &models.Account{UserID: 1, Balance: 100}))

	a, err := store.Accounts().GetByUserID(ctx, 1)
	require.NoError(t, err)
	a.Balance = 0

	again, err := store.Accounts().GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), again.Balance, "mutating a returned record must not touch the store")
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Accounts().GetByUserID(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = store.Purchases().GetByID(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = store.Users().GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = store.Accounts().Update(ctx, &models.Account{UserID: 42})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestStore_MerchantUpsertKeepsID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := &models.Merchant{UserID: 1, BusinessName: "Before"}
	require.NoError(t, store.Merchants().Upsert(ctx, first))

	second := &models.Merchant{UserID: 1, BusinessName: "After"}
	require.NoError(t, store.Merchants().Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	got, err := store.Merchants().GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "After", got.BusinessName)
}

func TestStore_ListByConsumerOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, amount := range []int64{100, 200, 300} {
		require.NoError(t, store.Purchases().Create(ctx, &models.Purchase{ConsumerID: 1, Amount: amount}))
	}
	require.NoError(t, store.Purchases().Create(ctx, &models.Purchase{ConsumerID: 2, Amount: 400}))

	out, err := store.Purchases().ListByConsumer(ctx, 1)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []uint{1, 2, 3}, []uint{out[0].ID, out[1].ID, out[2].ID})
}
