package models

// PlatformStats is the on-demand aggregate over all accounts and
// purchases. Derived, never stored.
type PlatformStats struct {
	TotalPurchases   int64 `json:"total_purchases"`
	TotalOutstanding int64 `json:"total_outstanding"`
	PlatformRevenue  int64 `json:"platform_revenue"`
	TotalAccounts    int64 `json:"total_accounts"`
}
