package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"jrs-backend/internal/audit"
	"jrs-backend/internal/metrics"
	"jrs-backend/internal/models"
	"jrs-backend/internal/pricing"
)

// PendingJobStore is the slice of the job store the reactor needs.
type PendingJobStore interface {
	ListByStatus(ctx context.Context, status string) ([]*models.Job, error)
	// UpdatePricing atomically promotes a job still in Pending Pricing,
	// reporting whether the row was actually changed.
	UpdatePricing(ctx context.Context, id string, status string, cost, sellingPrice float64) (bool, error)
}

// CatalogStore reads the full price catalog.
type CatalogStore interface {
	List(ctx context.Context) ([]models.PriceRecord, error)
}

// AuditAppender persists audit entries.
type AuditAppender interface {
	Append(ctx context.Context, entries ...models.AuditLog) error
}

// Publisher receives change events for connected dashboards.
type Publisher interface {
	Publish(event string, payload interface{})
}

// RepricingService is the auto-repricing reactor: whenever the price
// catalog or the job collection changes it re-scans every job stuck in
// Pending Pricing and promotes the ones whose lane now has a price.
//
// Each trigger is a full re-scan, not an incremental diff: the reactor has
// no reliable way to know which subset changed, and at tens to low
// thousands of jobs correctness wins over efficiency. Scans are serialized
// by a mutex, and the promotion itself is a single guarded update, so a
// user write racing the reactor can make the promotion a no-op but never a
// half-written job.
type RepricingService struct {
	jobs    PendingJobStore
	catalog CatalogStore
	audits  AuditAppender
	pub     Publisher

	mu      sync.Mutex // serializes scans
	trigger chan struct{}
}

func NewRepricingService(jobs PendingJobStore, catalog CatalogStore, audits AuditAppender, pub Publisher) *RepricingService {
	return &RepricingService{
		jobs:    jobs,
		catalog: catalog,
		audits:  audits,
		pub:     pub,
		trigger: make(chan struct{}, 1),
	}
}

// Start runs the background scan loop until ctx is done.
func (s *RepricingService) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.trigger:
				scanCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				if _, err := s.Rescan(scanCtx); err != nil {
					log.Printf("[Repricing] scan failed: %v", err)
				}
				cancel()
			}
		}
	}()
}

// Trigger requests a re-scan. Triggers arriving while a scan is queued
// coalesce into one; the channel never blocks a caller.
func (s *RepricingService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Rescan walks every Pending Pricing job once and promotes those whose
// lane now resolves. It returns the number of promotions. Running it twice
// against stable inputs changes nothing on the second pass: promoted jobs
// are no longer Pending Pricing, and the guarded update refuses re-writes.
func (s *RepricingService) Rescan(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.RepricingRunsTotal.Inc()

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(catalog) == 0 {
		return 0, nil
	}

	pendingJobs, err := s.jobs.ListByStatus(ctx, models.StatusPendingPricing)
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, job := range pendingJobs {
		rec := pricing.Resolve(catalog, job.Origin, job.Destination, job.TruckType, job.Subcontractor)
		if rec == nil {
			continue
		}

		drops := len(job.Drops)
		cost := pricing.TotalCost(rec, drops)
		sellingPrice := pricing.TotalRevenue(rec, drops)

		changed, err := s.jobs.UpdatePricing(ctx, job.ID, models.StatusNewRequest, cost, sellingPrice)
		if err != nil {
			return promoted, err
		}
		if !changed {
			// Someone else moved the job first; their write wins.
			continue
		}

		// One entry covers the whole promotion: the status flip and the
		// pricing it carried.
		entry := audit.New(job.ID, audit.System, "status/pricing",
			models.StatusPendingPricing,
			fmt.Sprintf("%s (cost %.2f, selling %.2f)", models.StatusNewRequest, cost, sellingPrice),
			audit.AutoPromoteReason)
		if err := s.audits.Append(ctx, entry); err != nil {
			return promoted, err
		}

		promoted++
		metrics.RepricingPromotionsTotal.Inc()
		if s.pub != nil {
			s.pub.Publish("job.repriced", map[string]interface{}{
				"job_id": job.ID, "status": models.StatusNewRequest,
				"cost": cost, "selling_price": sellingPrice,
			})
		}
		log.Printf("[Repricing] %s promoted to %s (cost %.2f, selling %.2f)",
			job.ID, models.StatusNewRequest, cost, sellingPrice)
	}

	return promoted, nil
}
