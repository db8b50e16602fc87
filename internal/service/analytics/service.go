package analytics

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
)

// Service derives read-only rollups over the donation ledger. Nothing is
// cached; every query recomputes from the current ledger.
type Service struct {
	donationRepo repository.DonationRepository
	accountRepo  repository.AccountRepository
}

func NewService(donationRepo repository.DonationRepository, accountRepo repository.AccountRepository) *Service {
	return &Service{donationRepo: donationRepo, accountRepo: accountRepo}
}

// Leaderboard groups donations by donor, sums quantities and sorts
// descending by total. Ties keep first-donation order (stable sort over
// chronological grouping). A limit <= 0 returns every donor.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*model.LeaderboardRow, error) {
	donations, err := s.donationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]*model.LeaderboardRow)
	rows := []*model.LeaderboardRow{}
	// List is newest first; walk backwards so grouping follows each
	// donor's first donation.
	for i := len(donations) - 1; i >= 0; i-- {
		d := donations[i]
		row, ok := totals[d.DonorID]
		if !ok {
			row = &model.LeaderboardRow{AccountID: d.DonorID, Name: s.donorName(ctx, d.DonorID)}
			totals[d.DonorID] = row
			rows = append(rows, row)
		}
		row.TotalQuantity += d.Quantity
		row.DonationCount++
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalQuantity > rows[j].TotalQuantity
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Analytics computes the platform-wide rollup. PendingCount counts every
// donation that is not distributed (pending and accepted alike), matching
// the externally published metric.
func (s *Service) Analytics(ctx context.Context) (*model.AnalyticsReport, error) {
	donations, err := s.donationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &model.AnalyticsReport{CategoryTotals: map[string]int{}}
	for _, d := range donations {
		report.TotalDonations++
		report.TotalQuantity += d.Quantity
		if d.Status == model.DonationStatusDistributed {
			report.DistributedCount++
		} else {
			report.PendingCount++
		}
		report.CategoryTotals[d.Category] += d.Quantity
	}
	return report, nil
}

// MySummary reports one donor's own totals plus their 1-based leaderboard
// rank, nil if they have never donated.
func (s *Service) MySummary(ctx context.Context, accountID uuid.UUID) (*model.DonorSummary, error) {
	donations, err := s.donationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.DonorSummary{}
	for _, d := range donations {
		if d.DonorID == accountID {
			summary.TotalMeals += d.Quantity
			summary.DonationCount++
		}
	}

	rows, err := s.Leaderboard(ctx, 0)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if row.AccountID == accountID {
			rank := i + 1
			summary.Rank = &rank
			break
		}
	}
	return summary, nil
}

func (s *Service) donorName(ctx context.Context, id uuid.UUID) string {
	account, err := s.accountRepo.Get(ctx, id)
	if err != nil {
		return "Anonymous"
	}
	return account.Name
}
