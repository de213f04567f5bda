// Package payment applies installment and payoff payments against
// purchases, and manages deposited balances.
package payment

import (
	"context"
	"errors"

	"paylater/internal/ledger"
	"paylater/internal/models"
	"paylater/internal/repositories"
	"paylater/internal/services/credit"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service applies payments and deposits.
type Service interface {
	// Pay applies a regular installment payment by the purchase's
	// consumer and returns the new remaining balance.
	Pay(ctx context.Context, callerID, purchaseID uint, amount int64) (int64, error)
	// PayEarly settles the full remaining balance (less any policy
	// discount) in one payment and returns the amount charged.
	PayEarly(ctx context.Context, callerID, purchaseID uint) (int64, error)
	Get(ctx context.Context, id uint) (*models.Payment, error)
	// Deposit credits the caller's balance and returns the new total.
	Deposit(ctx context.Context, callerID uint, amount int64) (int64, error)
}

type service struct {
	store  repositories.Store
	cache  repositories.AccountCache
	policy credit.Policy
	log    *zap.Logger
}

// NewService creates the payment service.
func NewService(store repositories.Store, cache repositories.AccountCache, policy credit.Policy, log *zap.Logger) Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		cache = repositories.NoopAccountCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{store: store, cache: cache, policy: policy, log: log}
}

func (s *service) Pay(ctx context.Context, callerID, purchaseID uint, amount int64) (int64, error) {
	var remaining int64
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		p, err := s.ownedActivePurchase(ctx, tx, callerID, purchaseID)
		if err != nil {
			return err
		}
		if amount < s.policy.MinInstallment(p.Amount, p.PaymentPlan) {
			return ledger.ErrInvalidAmount
		}

		account, err := s.activeAccount(ctx, tx, callerID)
		if err != nil {
			return err
		}

		// The final installment may exceed what is left. Only the
		// applied portion is charged and recorded, so the recorded
		// payments for a purchase always sum to the amount repaid.
		applied := amount
		if applied > p.RemainingBalance {
			applied = p.RemainingBalance
		}
		if account.Balance < applied {
			return ledger.ErrInsufficientBalance
		}

		account.Balance -= applied
		account.AvailableCredit += applied
		p.RemainingBalance -= applied
		if p.RemainingBalance == 0 {
			p.Status = models.PurchaseStatusPaid
			account.CreditScore = s.policy.RaiseScore(account.CreditScore)
		}

		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}
		if err := tx.Purchases().Update(ctx, p); err != nil {
			return err
		}
		if err := tx.Payments().Create(ctx, &models.Payment{
			PurchaseID:  purchaseID,
			PayerID:     callerID,
			Amount:      applied,
			PaymentType: models.PaymentTypeRegular,
			Reference:   uuid.NewString(),
		}); err != nil {
			return err
		}

		remaining = p.RemainingBalance
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, callerID)
	s.log.Info("payment applied",
		zap.Uint("purchase_id", purchaseID),
		zap.Int64("amount", amount),
		zap.Int64("remaining", remaining),
	)
	return remaining, nil
}

func (s *service) PayEarly(ctx context.Context, callerID, purchaseID uint) (int64, error) {
	var charged int64
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		p, err := s.ownedActivePurchase(ctx, tx, callerID, purchaseID)
		if err != nil {
			return err
		}

		account, err := s.activeAccount(ctx, tx, callerID)
		if err != nil {
			return err
		}

		payoff := s.policy.EarlyPayoffAmount(p.RemainingBalance)
		if account.Balance < payoff {
			return ledger.ErrInsufficientBalance
		}

		account.Balance -= payoff
		account.AvailableCredit += p.RemainingBalance
		account.CreditScore = s.policy.RaiseScore(account.CreditScore)
		p.RemainingBalance = 0
		p.Status = models.PurchaseStatusPaid

		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}
		if err := tx.Purchases().Update(ctx, p); err != nil {
			return err
		}
		if err := tx.Payments().Create(ctx, &models.Payment{
			PurchaseID:  purchaseID,
			PayerID:     callerID,
			Amount:      payoff,
			PaymentType: models.PaymentTypeEarlyPayoff,
			Reference:   uuid.NewString(),
		}); err != nil {
			return err
		}

		charged = payoff
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, callerID)
	s.log.Info("purchase paid off early",
		zap.Uint("purchase_id", purchaseID),
		zap.Int64("charged", charged),
	)
	return charged, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Payment, error) {
	return s.store.Payments().GetByID(ctx, id)
}

func (s *service) Deposit(ctx context.Context, callerID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ledger.ErrInvalidAmount
	}

	var balance int64
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		account, err := tx.Accounts().GetByUserID(ctx, callerID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ledger.ErrAccountNotFound
			}
			return err
		}
		if !account.IsActive {
			return ledger.ErrUnauthorized
		}
		account.Balance += amount
		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}
		balance = account.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, callerID)
	return balance, nil
}

// ownedActivePurchase loads a purchase for a payment operation. A
// missing purchase surfaces Unauthorized, so callers cannot probe for
// purchase existence.
func (s *service) ownedActivePurchase(ctx context.Context, tx repositories.Store, callerID, purchaseID uint) (*models.Purchase, error) {
	p, err := tx.Purchases().GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ledger.ErrUnauthorized
		}
		return nil, err
	}
	if p.ConsumerID != callerID {
		return nil, ledger.ErrUnauthorized
	}
	if p.Status != models.PurchaseStatusActive {
		return nil, ledger.ErrInvalidAmount
	}
	return p, nil
}

func (s *service) activeAccount(ctx context.Context, tx repositories.Store, userID uint) (*models.Account, error) {
	account, err := tx.Accounts().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, ledger.ErrUnauthorized
	}
	return account, nil
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if err := s.cache.InvalidateAccount(ctx, userID); err != nil {
		s.log.Warn("account cache invalidation failed", zap.Error(err))
	}
}
