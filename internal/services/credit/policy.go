// Package credit holds the underwriting policy and the read-only
// credit queries. The policy numbers are parameters, not invariants:
// every knob can be overridden through the environment.
package credit

import (
	"strconv"
	"strings"

	"paylater/internal/config"
)

// Policy is the set of underwriting parameters applied to every
// purchase and payment.
type Policy struct {
	// MinPurchaseAmount is the smallest approvable purchase, in
	// micro-units.
	MinPurchaseAmount int64
	// AllowedPlans is the set of valid installment counts.
	AllowedPlans []int
	// CreditMultiplier converts a credit score into a credit limit:
	// limit = score * multiplier.
	CreditMultiplier int64
	// EarlyPayoffDiscountBps is the basis-point discount applied to
	// the remaining balance on early payoff.
	EarlyPayoffDiscountBps int64
	// PlatformFeeBps is the basis-point share of completed payment
	// volume counted as platform revenue.
	PlatformFeeBps int64
	// PayoffScoreBonus is added to the consumer's score when a
	// purchase is fully paid, capped at MaxCreditScore.
	PayoffScoreBonus int
	MaxCreditScore   int
	// DefaultPenalty is subtracted from the score when a purchase is
	// marked defaulted, floored at MinCreditScore.
	DefaultPenalty int
	MinCreditScore int
}

// DefaultPolicy returns the production defaults.
func DefaultPolicy() Policy {
	return Policy{
		MinPurchaseAmount:      100_000,
		AllowedPlans:           []int{4, 6, 12},
		CreditMultiplier:       10_000,
		EarlyPayoffDiscountBps: 0,
		PlatformFeeBps:         200,
		PayoffScoreBonus:       10,
		MaxCreditScore:         850,
		DefaultPenalty:         75,
		MinCreditScore:         300,
	}
}

// PolicyFromEnv builds the policy from environment overrides on top of
// the defaults.
func PolicyFromEnv() Policy {
	p := DefaultPolicy()
	p.MinPurchaseAmount = config.GetInt64Env("CREDIT_MIN_PURCHASE", p.MinPurchaseAmount)
	p.CreditMultiplier = config.GetInt64Env("CREDIT_MULTIPLIER", p.CreditMultiplier)
	p.EarlyPayoffDiscountBps = config.GetInt64Env("CREDIT_EARLY_PAYOFF_DISCOUNT_BPS", p.EarlyPayoffDiscountBps)
	p.PlatformFeeBps = config.GetInt64Env("CREDIT_PLATFORM_FEE_BPS", p.PlatformFeeBps)
	if plans := config.GetEnv("CREDIT_ALLOWED_PLANS", ""); plans != "" {
		var parsed []int
		for _, part := range strings.Split(plans, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n > 0 {
				parsed = append(parsed, n)
			}
		}
		if len(parsed) > 0 {
			p.AllowedPlans = parsed
		}
	}
	return p
}

// LimitForScore converts a credit score into the initial credit limit.
func (p Policy) LimitForScore(score int) int64 {
	if score <= 0 {
		return 0
	}
	return int64(score) * p.CreditMultiplier
}

// PlanAllowed reports whether plan is a valid installment count.
func (p Policy) PlanAllowed(plan int) bool {
	for _, allowed := range p.AllowedPlans {
		if plan == allowed {
			return true
		}
	}
	return false
}

// MinInstallment is the smallest acceptable regular payment for a
// purchase of the given amount and plan.
func (p Policy) MinInstallment(amount int64, plan int) int64 {
	if plan <= 0 {
		return amount
	}
	return amount / int64(plan)
}

// EarlyPayoffAmount is the balance due when settling a purchase early.
func (p Policy) EarlyPayoffAmount(remaining int64) int64 {
	discount := remaining * p.EarlyPayoffDiscountBps / 10_000
	return remaining - discount
}

// RevenueShare is the platform's cut of completed payment volume.
func (p Policy) RevenueShare(paymentVolume int64) int64 {
	return paymentVolume * p.PlatformFeeBps / 10_000
}

// RaiseScore applies the payoff bonus.
func (p Policy) RaiseScore(score int) int {
	score += p.PayoffScoreBonus
	if score > p.MaxCreditScore {
		return p.MaxCreditScore
	}
	return score
}

// PenalizeScore applies the default penalty.
func (p Policy) PenalizeScore(score int) int {
	score -= p.DefaultPenalty
	if score < p.MinCreditScore {
		return p.MinCreditScore
	}
	return score
}
