package services

import (
	"context"

	"jrs-backend/internal/cache"
	"jrs-backend/internal/models"
	"jrs-backend/internal/repositories"
)

// DashboardStats is the rollup behind the operations dashboard.
type DashboardStats struct {
	JobsByStatus   map[string]int `json:"jobs_by_status"`
	PendingReview  int            `json:"pending_review"`
	TotalCost      float64        `json:"total_cost"`
	TotalRevenue   float64        `json:"total_revenue"`
	TotalProfit    float64        `json:"total_profit"`
	PendingPricing int            `json:"pending_pricing"`
}

type DashboardService struct {
	JobRepo *repositories.JobRepository
}

func NewDashboardService(jobRepo *repositories.JobRepository) *DashboardService {
	return &DashboardService{JobRepo: jobRepo}
}

// Stats computes the dashboard rollup, served from Redis when the cached
// copy is still fresh. Cancelled jobs are excluded from the money columns.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if cache.GetDashboardStats(ctx, &cached) {
		return &cached, nil
	}

	counts, err := s.JobRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	jobs, err := s.JobRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		JobsByStatus:   counts,
		PendingPricing: counts[models.StatusPendingPricing],
	}
	for _, j := range jobs {
		if j.Status == models.StatusCancelled {
			continue
		}
		stats.TotalCost += j.Cost
		stats.TotalRevenue += j.SellingPrice + j.ExtraCharge
		stats.TotalProfit += j.Profit()
		if j.AccountingStatus == models.AccountingPendingReview {
			stats.PendingReview++
		}
	}

	cache.SetDashboardStats(ctx, stats)
	return stats, nil
}
