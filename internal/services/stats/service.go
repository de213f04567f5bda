// Package stats derives the platform-wide aggregates on demand.
// Results are computed from committed state and never cached.
package stats

import (
	"context"

	"paylater/internal/models"
	"paylater/internal/repositories"
	"paylater/internal/services/credit"
)

// Service computes platform statistics.
type Service interface {
	Platform(ctx context.Context) (models.PlatformStats, error)
}

type service struct {
	store  repositories.Store
	policy credit.Policy
}

// NewService creates the stats service.
func NewService(store repositories.Store, policy credit.Policy) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store, policy: policy}
}

func (s *service) Platform(ctx context.Context) (models.PlatformStats, error) {
	var out models.PlatformStats

	totalPurchases, err := s.store.Purchases().Count(ctx)
	if err != nil {
		return out, err
	}
	outstanding, err := s.store.Purchases().SumOutstanding(ctx)
	if err != nil {
		return out, err
	}
	paymentVolume, err := s.store.Payments().SumCompleted(ctx)
	if err != nil {
		return out, err
	}
	totalAccounts, err := s.store.Accounts().Count(ctx)
	if err != nil {
		return out, err
	}

	out.TotalPurchases = totalPurchases
	out.TotalOutstanding = outstanding
	out.PlatformRevenue = s.policy.RevenueShare(paymentVolume)
	out.TotalAccounts = totalAccounts
	return out, nil
}
