package models

import "time"

// Purchase statuses. Transitions are forward-only: active purchases may
// become paid or defaulted; paid and defaulted are terminal.
const (
	PurchaseStatusActive    = "active"
	PurchaseStatusPaid      = "paid"
	PurchaseStatusDefaulted = "defaulted"
)

// Purchase is an installment purchase underwritten against a consumer's
// credit line. IDs are global and sequential across all consumers.
type Purchase struct {
	ID               uint      `gorm:"primarykey" json:"purchase_id"`
	ConsumerID       uint      `gorm:"index;not null" json:"consumer_id"`
	MerchantID       *uint     `json:"merchant_id,omitempty"`
	Amount           int64     `gorm:"not null" json:"purchase_amount"`
	PaymentPlan      int       `gorm:"not null" json:"payment_plan"`
	RemainingBalance int64     `gorm:"not null" json:"remaining_balance"`
	Status           string    `gorm:"default:'active'" json:"status"`
	Description      string    `json:"description"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
