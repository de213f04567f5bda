package models

import "time"

// Merchant verification statuses.
const (
	MerchantStatusPending  = "pending"
	MerchantStatusVerified = "verified"
)

// Merchant is the business record attached to a merchant-type account.
// Inactive until verified by an administrator.
type Merchant struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	BusinessName       string    `gorm:"not null" json:"business_name"`
	MonthlyVolume      int64     `json:"monthly_volume"`
	BankAccount        string    `json:"bank_account"`
	VerificationStatus string    `gorm:"default:'pending'" json:"verification_status"`
	IsActive           bool      `gorm:"default:false" json:"is_active"`
	APIKey             string    `gorm:"column:api_key" json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
