package repositories

import (
	"context"

	"gorm.io/gorm"
)

// gormStore implements Store on top of gorm. Atomic wraps fn in a
// database transaction; repositories obtained inside the transaction
// lock rows they read for update, preserving the single-writer
// guarantee when several server instances share one database.
type gormStore struct {
	db   *gorm.DB
	inTx bool
}

// NewStore creates the Postgres-backed ledger store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository         { return &gormUserRepository{s} }
func (s *gormStore) Accounts() AccountRepository   { return &gormAccountRepository{s} }
func (s *gormStore) Purchases() PurchaseRepository { return &gormPurchaseRepository{s} }
func (s *gormStore) Payments() PaymentRepository   { return &gormPaymentRepository{s} }
func (s *gormStore) Merchants() MerchantRepository { return &gormMerchantRepository{s} }
func (s *gormStore) Autopay() AutopayRepository    { return &gormAutopayRepository{s} }

func (s *gormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx, inTx: true})
	})
}
