package model

import (
	"github.com/google/uuid"
)

// LeaderboardRow is one donor's aggregate standing
type LeaderboardRow struct {
	AccountID     uuid.UUID `json:"account_id"`
	Name          string    `json:"name"`
	TotalQuantity int       `json:"total_quantity"`
	DonationCount int       `json:"donation_count"`
}

// AnalyticsReport is the platform-wide rollup. PendingCount counts every
// donation that is not distributed, accepted donations included.
type AnalyticsReport struct {
	TotalDonations   int            `json:"total_donations"`
	TotalQuantity    int            `json:"total_quantity"`
	DistributedCount int            `json:"distributed_count"`
	PendingCount     int            `json:"pending_count"`
	CategoryTotals   map[string]int `json:"category_totals"`
}

// DonorSummary is one donor's own impact view. Rank is nil when the
// account has never donated.
type DonorSummary struct {
	TotalMeals    int  `json:"total_meals"`
	DonationCount int  `json:"donation_count"`
	Rank          *int `json:"rank"`
}
