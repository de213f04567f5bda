package models

import "time"

// Payment types.
const (
	PaymentTypeRegular     = "regular"
	PaymentTypeEarlyPayoff = "early-payoff"
)

// Payment is an append-only record of funds applied against a purchase.
// Never mutated after creation.
type Payment struct {
	ID          uint      `gorm:"primarykey" json:"payment_id"`
	PurchaseID  uint      `gorm:"index;not null" json:"purchase_id"`
	PayerID     uint      `gorm:"index;not null" json:"payer_id"`
	Amount      int64     `gorm:"not null" json:"amount"`
	PaymentType string    `gorm:"not null" json:"payment_type"`
	Reference   string    `gorm:"uniqueIndex" json:"reference"`
	CreatedAt   time.Time `json:"created_at"`
}
