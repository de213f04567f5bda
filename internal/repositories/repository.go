// Package repositories provides the data access layer. The ledger is
// reached through the Store interface; a gorm/Postgres implementation
// lives here and an in-memory one under repositories/memory.
package repositories

import (
	"context"
	"errors"

	"paylater/internal/models"
)

// ErrNotFound is returned by lookups when no record exists.
var ErrNotFound = errors.New("record not found")

// Store bundles the entity repositories behind a single unit of work.
// Atomic runs fn against a store whose writes either all commit or all
// roll back; no other operation observes a partial effect.
type Store interface {
	Users() UserRepository
	Accounts() AccountRepository
	Purchases() PurchaseRepository
	Payments() PaymentRepository
	Merchants() MerchantRepository
	Autopay() AutopayRepository

	Atomic(ctx context.Context, fn func(Store) error) error
}

// UserRepository persists authentication principals.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// AccountRepository persists ledger accounts, keyed by user ID.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUserID(ctx context.Context, userID uint) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Count(ctx context.Context) (int64, error)
}

// PurchaseRepository persists purchases. ListByConsumer returns the
// consumer's purchases in creation order.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	GetByID(ctx context.Context, id uint) (*models.Purchase, error)
	ListByConsumer(ctx context.Context, consumerID uint) ([]models.Purchase, error)
	Update(ctx context.Context, purchase *models.Purchase) error
	Count(ctx context.Context) (int64, error)
	SumOutstanding(ctx context.Context) (int64, error)
}

// PaymentRepository persists payment records. Payments are append-only.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	SumCompleted(ctx context.Context) (int64, error)
}

// MerchantRepository persists merchant business records.
type MerchantRepository interface {
	Upsert(ctx context.Context, merchant *models.Merchant) error
	GetByUserID(ctx context.Context, userID uint) (*models.Merchant, error)
}

// AutopayRepository persists autopay configurations.
type AutopayRepository interface {
	Upsert(ctx context.Context, autopay *models.Autopay) error
	GetByUserID(ctx context.Context, userID uint) (*models.Autopay, error)
}

// AccountCache is a read-through cache for account records. Mutating
// operations invalidate; lookups may serve stale-free cached copies.
type AccountCache interface {
	GetAccount(ctx context.Context, userID uint) (*models.Account, error)
	SetAccount(ctx context.Context, account *models.Account) error
	InvalidateAccount(ctx context.Context, userID uint) error
}

// NoopAccountCache satisfies AccountCache without caching anything.
type NoopAccountCache struct{}

func (NoopAccountCache) GetAccount(context.Context, uint) (*models.Account, error) {
	return nil, ErrNotFound
}
func (NoopAccountCache) SetAccount(context.Context, *models.Account) error { return nil }
func (NoopAccountCache) InvalidateAccount(context.Context, uint) error     { return nil }
