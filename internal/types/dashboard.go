package types

// DashboardStats is an aggregate read, not a table.
type DashboardStats struct {
	TotalRevenue      float64            `json:"total_revenue"`
	TotalTransactions int64              `json:"total_transactions"`
	PublishedLinks    int64              `json:"published_links"`
	RevenueByCurrency map[string]float64 `json:"revenue_by_currency"`
	RecentRevenue     float64            `json:"recent_revenue"`
	TopPerformingLink *PaymentLink       `json:"top_performing_link,omitempty"`
}
