package models

import "time"

// Account types. The numeric codes are the wire values accepted by the
// create-account operation.
const (
	AccountTypeConsumer = "consumer"
	AccountTypeMerchant = "merchant"

	AccountTypeCodeConsumer = 1
	AccountTypeCodeMerchant = 2
)

// DefaultCreditScore is assigned to every new account.
const DefaultCreditScore = 650

// Account is the ledger record for a principal. One per user; the
// autoincrement ID is the public account-id and is never reused.
type Account struct {
	ID              uint      `gorm:"primarykey" json:"account_id"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	AccountType     string    `gorm:"not null" json:"account_type"`
	FullName        string    `gorm:"not null" json:"full_name"`
	Email           string    `gorm:"not null" json:"email"`
	Phone           string    `json:"phone"`
	CreditScore     int       `gorm:"default:650" json:"credit_score"`
	AvailableCredit int64     `gorm:"not null;default:0" json:"available_credit"`
	Balance         int64     `gorm:"not null;default:0" json:"balance"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	KYCVerified     bool      `gorm:"default:false" json:"kyc_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AccountTypeFromCode maps a wire code to an account type, or "" when
// the code is not recognized.
func AccountTypeFromCode(code int) string {
	switch code {
	case AccountTypeCodeConsumer:
		return AccountTypeConsumer
	case AccountTypeCodeMerchant:
		return AccountTypeMerchant
	default:
		return ""
	}
}

// Autopay holds a consumer's automatic payment configuration.
// Re-running setup overwrites the previous record.
type Autopay struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	PrimaryAccount string    `gorm:"not null" json:"primary_account"`
	BackupAccount  string    `json:"backup_account"`
	Enabled        bool      `gorm:"default:true" json:"enabled"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
