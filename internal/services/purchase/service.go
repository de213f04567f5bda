// Package purchase implements purchase underwriting and lifecycle.
package purchase

import (
	"context"
	"errors"

	"paylater/internal/ledger"
	"paylater/internal/models"
	"paylater/internal/repositories"
	"paylater/internal/services/credit"

	"go.uber.org/zap"
)

// MakeRequest is the input to Make.
type MakeRequest struct {
	Amount      int64
	Plan        int
	MerchantID  *uint
	Description string
}

// Service creates and reads purchases.
type Service interface {
	// Make underwrites and records a purchase for the caller.
	// Validation order is part of the contract: amount, plan, account
	// existence, suspension, KYC, credit.
	Make(ctx context.Context, callerID uint, req MakeRequest) (uint, error)
	Get(ctx context.Context, id uint) (*models.Purchase, error)
	// ListIDs returns the caller's purchase IDs in creation order.
	ListIDs(ctx context.Context, consumerID uint) ([]uint, error)

	// MarkDefaulted is the admin operation that moves an active
	// purchase to defaulted and penalizes the consumer's score.
	MarkDefaulted(ctx context.Context, caller models.Caller, id uint) error
}

type service struct {
	store  repositories.Store
	cache  repositories.AccountCache
	policy credit.Policy
	log    *zap.Logger
}

// NewService creates the purchase service.
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

func (s *service) Make(ctx context.Context, callerID uint, req MakeRequest) (uint, error) {
	if req.Amount < s.policy.MinPurchaseAmount {
		return 0, ledger.ErrInvalidAmount
	}
	if !s.policy.PlanAllowed(req.Plan) {
		return 0, ledger.ErrInvalidPaymentPlan
	}

	var purchaseID uint
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
		if !account.KYCVerified {
			return ledger.ErrCreditDeclined
		}
		if req.Amount > account.AvailableCredit {
			return ledger.ErrInsufficientCredit
		}

		account.AvailableCredit -= req.Amount
		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}

		p := &models.Purchase{
			ConsumerID:       callerID,
			MerchantID:       req.MerchantID,
			Amount:           req.Amount,
			PaymentPlan:      req.Plan,
			RemainingBalance: req.Amount,
			Status:           models.PurchaseStatusActive,
			Description:      req.Description,
		}
		if err := tx.Purchases().Create(ctx, p); err != nil {
			return err
		}
		purchaseID = p.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, callerID)
	s.log.Info("purchase created",
		zap.Uint("purchase_id", purchaseID),
		zap.Uint("consumer_id", callerID),
		zap.Int64("amount", req.Amount),
		zap.Int("plan", req.Plan),
	)
	return purchaseID, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Purchase, error) {
	return s.store.Purchases().GetByID(ctx, id)
}

func (s *service) ListIDs(ctx context.Context, consumerID uint) ([]uint, error) {
	purchases, err := s.store.Purchases().ListByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (s *service) MarkDefaulted(ctx context.Context, caller models.Caller, id uint) error {
	if !caller.IsAdmin() {
		return ledger.ErrUnauthorized
	}

	var consumerID uint
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		p, err := tx.Purchases().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ledger.ErrAccountNotFound
			}
			return err
		}
		if p.Status != models.PurchaseStatusActive {
			return ledger.ErrInvalidAmount
		}

		p.Status = models.PurchaseStatusDefaulted
		if err := tx.Purchases().Update(ctx, p); err != nil {
			return err
		}

		account, err := tx.Accounts().GetByUserID(ctx, p.ConsumerID)
		if err != nil {
			return err
		}
		account.CreditScore = s.policy.PenalizeScore(account.CreditScore)
		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}
		consumerID = p.ConsumerID
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, consumerID)
	s.log.Info("purchase defaulted", zap.Uint("purchase_id", id))
	return nil
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if err := s.cache.InvalidateAccount(ctx, userID); err != nil {
		s.log.Warn("account cache invalidation failed", zap.Error(err))
	}
}
