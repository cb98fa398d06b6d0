package services

import (
	"context"

	"jrs-backend/internal/cache"
	"jrs-backend/internal/models"
	"jrs-backend/internal/pricing"
	"jrs-backend/internal/repositories"
)

// PriceService owns the price catalog. Writes are whole-list replacement
// (the admin screen always sends the full catalog), and every replacement
// wakes the repricing reactor so jobs stuck in Pending Pricing pick up new
// lanes immediately.
type PriceService struct {
	Repo    *repositories.PriceRepository
	Reactor *RepricingService
	Pub     Publisher
}

func NewPriceService(repo *repositories.PriceRepository, reactor *RepricingService, pub Publisher) *PriceService {
	return &PriceService{Repo: repo, Reactor: reactor, Pub: pub}
}

func (s *PriceService) List(ctx context.Context) ([]models.PriceRecord, error) {
	return s.Repo.List(ctx)
}

func (s *PriceService) Replace(ctx context.Context, records []models.PriceRecord) error {
	if err := s.Repo.ReplaceAll(ctx, records); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx)
	if s.Pub != nil {
		s.Pub.Publish("catalog.replaced", map[string]int{"records": len(records)})
	}
	if s.Reactor != nil {
		s.Reactor.Trigger()
	}
	return nil
}

// Quote resolves a lane ahead of job creation so the booking form can show
// the price, or "pricing not yet available" when the lane has no record.
type Quote struct {
	Available    bool                 `json:"available"`
	Record       *models.PriceRecord  `json:"record,omitempty"`
	Matches      []models.PriceRecord `json:"matches,omitempty"`
	TotalCost    float64              `json:"total_cost"`
	TotalRevenue float64              `json:"total_revenue"`
}

func (s *PriceService) Quote(ctx context.Context, origin, destination, truckType, subcontractor string, drops int) (*Quote, error) {
	catalog, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	rec := pricing.Resolve(catalog, origin, destination, truckType, subcontractor)
	if rec == nil {
		// A miss is a normal business state, not an error.
		return &Quote{Available: false}, nil
	}
	return &Quote{
		Available:    true,
		Record:       rec,
		Matches:      pricing.Matches(catalog, origin, destination, truckType),
		TotalCost:    pricing.TotalCost(rec, drops),
		TotalRevenue: pricing.TotalRevenue(rec, drops),
	}, nil
}
