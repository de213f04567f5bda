package credit

import (
	"context"
	"errors"

	"paylater/internal/repositories"
)

// Service answers the read-only credit queries. Both return 0 for a
// principal with no account; 0 is the explicit "no account" sentinel,
// never a valid score or limit.
type Service interface {
	Score(ctx context.Context, userID uint) (int, error)
	AvailableCredit(ctx context.Context, userID uint) (int64, error)
}

type service struct {
	store repositories.Store
}

// NewService creates the credit query service.
func NewService(store repositories.Store) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store}
}

func (s *service) Score(ctx context.Context, userID uint) (int, error) {
	account, err := s.store.Accounts().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return account.CreditScore, nil
}

func (s *service) AvailableCredit(ctx context.Context, userID uint) (int64, error) {
	account, err := s.store.Accounts().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return account.AvailableCredit, nil
}
