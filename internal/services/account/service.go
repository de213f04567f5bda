// Package account implements the account registry: one ledger account
// per principal, plus the admin controls and autopay configuration
// that act on it.
package account

import (
	"context"
	"errors"

	"paylater/internal/ledger"
	"paylater/internal/models"
	"paylater/internal/repositories"
	"paylater/internal/services/credit"

	"go.uber.org/zap"
)

// Service is the account registry.
type Service interface {
	// Create opens a ledger account for the caller. Fails with
	// AccountExists when the caller already has one and InvalidAmount
	// when typeCode is not a recognized account type.
	Create(ctx context.Context, callerID uint, typeCode int, fullName, email, phone string) (uint, error)
	Get(ctx context.Context, userID uint) (*models.Account, error)
	Exists(ctx context.Context, userID uint) (bool, error)

	// SetupAutopay stores (or overwrites) the caller's autopay
	// configuration. Fails AccountNotFound when the caller has no
	// account.
	SetupAutopay(ctx context.Context, callerID uint, primary, backup string) error

	// Admin controls. All fail Unauthorized unless the caller holds
	// the administrator role.
	VerifyKYC(ctx context.Context, caller models.Caller, target uint) error
	Suspend(ctx context.Context, caller models.Caller, target uint) error
}

type service struct {
	store  repositories.Store
	cache  repositories.AccountCache
	policy credit.Policy
	log    *zap.Logger
}

// NewService creates the account registry service.
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

func (s *service) Create(ctx context.Context, callerID uint, typeCode int, fullName, email, phone string) (uint, error) {
	var accountID uint
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		if _, err := tx.Accounts().GetByUserID(ctx, callerID); err == nil {
			return ledger.ErrAccountExists
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		accountType := models.AccountTypeFromCode(typeCode)
		if accountType == "" {
			return ledger.ErrInvalidAmount
		}

		account := &models.Account{
			UserID:          callerID,
			AccountType:     accountType,
			FullName:        fullName,
			Email:           email,
			Phone:           phone,
			CreditScore:     models.DefaultCreditScore,
			AvailableCredit: s.policy.LimitForScore(models.DefaultCreditScore),
			Balance:         0,
			IsActive:        true,
			KYCVerified:     false,
		}
		if err := tx.Accounts().Create(ctx, account); err != nil {
			return err
		}
		accountID = account.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("account created",
		zap.Uint("account_id", accountID),
		zap.Uint("user_id", callerID),
	)
	return accountID, nil
}

func (s *service) Get(ctx context.Context, userID uint) (*models.Account, error) {
	if account, err := s.cache.GetAccount(ctx, userID); err == nil {
		return account, nil
	}

	account, err := s.store.Accounts().GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetAccount(ctx, account); err != nil {
		s.log.Warn("account cache set failed", zap.Error(err))
	}
	return account, nil
}

func (s *service) Exists(ctx context.Context, userID uint) (bool, error) {
	_, err := s.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) SetupAutopay(ctx context.Context, callerID uint, primary, backup string) error {
	return s.store.Atomic(ctx, func(tx repositories.Store) error {
		if _, err := tx.Accounts().GetByUserID(ctx, callerID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ledger.ErrAccountNotFound
			}
			return err
		}
		return tx.Autopay().Upsert(ctx, &models.Autopay{
			UserID:         callerID,
			PrimaryAccount: primary,
			BackupAccount:  backup,
			Enabled:        true,
		})
	})
}

func (s *service) VerifyKYC(ctx context.Context, caller models.Caller, target uint) error {
	if !caller.IsAdmin() {
		return ledger.ErrUnauthorized
	}
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		account, err := tx.Accounts().GetByUserID(ctx, target)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ledger.ErrAccountNotFound
			}
			return err
		}
		account.KYCVerified = true
		return tx.Accounts().Update(ctx, account)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, target)
	s.log.Info("kyc verified", zap.Uint("user_id", target))
	return nil
}

func (s *service) Suspend(ctx context.Context, caller models.Caller, target uint) error {
	if !caller.IsAdmin() {
		return ledger.ErrUnauthorized
	}
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		account, err := tx.Accounts().GetByUserID(ctx, target)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ledger.ErrAccountNotFound
			}
			return err
		}
		account.IsActive = false
		return tx.Accounts().Update(ctx, account)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, target)
	s.log.Info("account suspended", zap.Uint("user_id", target))
	return nil
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if err := s.cache.InvalidateAccount(ctx, userID); err != nil {
		s.log.Warn("account cache invalidation failed", zap.Error(err))
	}
}
