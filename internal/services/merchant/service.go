// Package merchant implements the merchant business-record lifecycle:
// registration by merchant-type accounts and verification by the
// administrator.
package merchant

import (
	"context"
	"errors"

	"paylater/internal/ledger"
	"paylater/internal/models"
	"paylater/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest is the input to Register.
type RegisterRequest struct {
	BusinessName  string
	MonthlyVolume int64
	BankAccount   string
}

// Service manages merchant business records.
type Service interface {
	// Register creates or overwrites the caller's merchant record,
	// pending verification. The caller's account must exist and be
	// merchant-typed.
	Register(ctx context.Context, callerID uint, req RegisterRequest) (*models.Merchant, error)
	Get(ctx context.Context, userID uint) (*models.Merchant, error)
	// Verify is admin-only; it marks the record verified and active.
	Verify(ctx context.Context, caller models.Caller, target uint) error
}

type service struct {
	store repositories.Store
	log   *zap.Logger
}

// NewService creates the merchant service.
func NewService(store repositories.Store, log *zap.Logger) Service {
	if store == nil {
		panic("store is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{store: store, log: log}
}

func (s *service) Register(ctx context.Context, callerID uint, req RegisterRequest) (*models.Merchant, error) {
	var merchant *models.Merchant
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		account, err := tx.Accounts().GetByUserID(ctx, callerID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ledger.ErrUnauthorized
			}
			return err
		}
		if account.AccountType != models.AccountTypeMerchant {
			return ledger.ErrUnauthorized
		}

		merchant = &models.Merchant{
			UserID:             callerID,
			BusinessName:       req.BusinessName,
			MonthlyVolume:      req.MonthlyVolume,
			BankAccount:        req.BankAccount,
			VerificationStatus: models.MerchantStatusPending,
			IsActive:           false,
			APIKey:             uuid.NewString(),
		}
		return tx.Merchants().Upsert(ctx, merchant)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("merchant registered",
		zap.Uint("user_id", callerID),
		zap.String("business_name", req.BusinessName),
	)
	return merchant, nil
}

func (s *service) Get(ctx context.Context, userID uint) (*models.Merchant, error) {
	return s.store.Merchants().GetByUserID(ctx, userID)
}

func (s *service) Verify(ctx context.Context, caller models.Caller, target uint) error {
	if !caller.IsAdmin() {
		return ledger.ErrUnauthorized
	}
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		merchant, err := tx.Merchants().GetByUserID(ctx, target)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ledger.ErrAccountNotFound
			}
			return err
		}
		merchant.VerificationStatus = models.MerchantStatusVerified
		merchant.IsActive = true
		return tx.Merchants().Upsert(ctx, merchant)
	})
	if err != nil {
		return err
	}

	s.log.Info("merchant verified", zap.Uint("user_id", target))
	return nil
}
