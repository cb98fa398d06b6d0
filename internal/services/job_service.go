package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jrs-backend/internal/audit"
	"jrs-backend/internal/cache"
	"jrs-backend/internal/lifecycle"
	"jrs-backend/internal/metrics"
	"jrs-backend/internal/models"
	"jrs-backend/internal/pricing"
	"jrs-backend/internal/timeutil"
)

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrMissingRoute    = errors.New("origin, destination and truck type are required")
	ErrMissingCarrier  = errors.New("subcontractor, driver name and license plate are required")
	ErrDropOutOfRange  = errors.New("drop index out of range")
	ErrNotYetCompleted = errors.New("billing fields are meaningless before the job completes")
)

// Notifier pushes short operational messages to the dispatch channel.
type Notifier interface {
	Send(text string)
}

// JobStore is the job persistence surface the service works against. The
// repricing reactor uses its own narrower PendingJobStore.
type JobStore interface {
	Create(ctx context.Context, j *models.Job) error
	Get(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context) ([]*models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id string) error
}

// JobService owns every job mutation. All state changes go through the
// lifecycle package so legality is decided in exactly one place, and every
// change of status, accounting status, cost or selling price lands in the
// audit log. Audit entries are appended before the job write: a failure in
// between can leave a spare audit row but never an unaudited mutation.
type JobService struct {
	JobRepo   JobStore
	PriceRepo CatalogStore
	AuditRepo AuditAppender

	Reactor  *RepricingService
	Pub      Publisher
	Notify   Notifier
}

func NewJobService(jobRepo JobStore, priceRepo CatalogStore,
	auditRepo AuditAppender, reactor *RepricingService,
	pub Publisher, notify Notifier) *JobService {
	return &JobService{
		JobRepo:   jobRepo,
		PriceRepo: priceRepo,
		AuditRepo: auditRepo,
		Reactor:   reactor,
		Pub:       pub,
		Notify:    notify,
	}
}

// Create books a new job. When the price resolver finds no match for the
// lane the job enters Pending Pricing with zero cost and selling price;
// otherwise it enters New Request priced from the match plus drop fees.
func (s *JobService) Create(ctx context.Context, req *models.CreateJobRequest, actor audit.Actor, requesterID int) (*models.Job, error) {
	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	truckType := strings.TrimSpace(req.TruckType)
	if origin == "" || destination == "" || truckType == "" {
		return nil, ErrMissingRoute
	}

	drops := make([]models.DropDetail, 0, len(req.DropPoints))
	for _, loc := range req.DropPoints {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			continue
		}
		drops = append(drops, models.DropDetail{Location: loc, Status: models.DropPending})
	}

	catalog, err := s.PriceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rec := pricing.Resolve(catalog, origin, destination, truckType, "")

	job := &models.Job{
		Origin:        origin,
		Destination:   destination,
		TruckType:     truckType,
		RequesterID:   requesterID,
		RequesterName: actor.Name,
		Status:        lifecycle.InitialStatus(rec != nil),
		Drops:         drops,
		ExtraCharges:  []models.ExtraChargeDetail{},
	}
	if rec != nil {
		job.Cost = pricing.TotalCost(rec, len(drops))
		job.SellingPrice = pricing.TotalRevenue(rec, len(drops))
	}

	if err := s.JobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	entries := []models.AuditLog{
		audit.New(job.ID, actor, "status", "", job.Status, "Job created"),
	}
	if rec != nil {
		entries = append(entries,
			audit.New(job.ID, actor, "cost", "", job.Cost, "Priced on creation"),
			audit.New(job.ID, actor, "selling_price", "", job.SellingPrice, "Priced on creation"),
		)
	}
	if err := s.AuditRepo.Append(ctx, entries...); err != nil {
		return nil, err
	}

	metrics.JobsCreatedTotal.WithLabelValues(job.Status).Inc()
	s.afterWrite(ctx, "job.created", job)
	if s.Notify != nil {
		s.Notify.Send(fmt.Sprintf("New job %s: %s → %s (%s), status %s",
			job.ID, job.Origin, job.Destination, job.TruckType, job.Status))
	}
	return job, nil
}

// Assign attaches a subcontractor and driver. A job still awaiting pricing
// is not assignable; the lifecycle table enforces that.
func (s *JobService) Assign(ctx context.Context, id string, req *models.AssignJobRequest, actor audit.Actor) (*models.Job, error) {
	if strings.TrimSpace(req.Subcontractor) == "" ||
		strings.TrimSpace(req.DriverName) == "" ||
		strings.TrimSpace(req.LicensePlate) == "" {
		return nil, ErrMissingCarrier
	}

	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}

	entries, err := lifecycle.Apply(job, models.StatusAssigned, actor,
		fmt.Sprintf("Assigned to %s / %s", req.Subcontractor, req.DriverName))
	if err != nil {
		return nil, err
	}
	job.Subcontractor = strings.TrimSpace(req.Subcontractor)
	job.DriverName = strings.TrimSpace(req.DriverName)
	job.DriverPhone = strings.TrimSpace(req.DriverPhone)
	job.LicensePlate = strings.TrimSpace(req.LicensePlate)

	// A subcontractor-specific price may beat the generic pick used at
	// creation; re-resolve now that we know who runs the lane.
	if !job.IsBaseCostLocked {
		catalog, err := s.PriceRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		if rec := pricing.Resolve(catalog, job.Origin, job.Destination, job.TruckType, job.Subcontractor); rec != nil {
			cost := pricing.TotalCost(rec, len(job.Drops))
			selling := pricing.TotalRevenue(rec, len(job.Drops))
			if cost != job.Cost {
				entries = append(entries, audit.New(job.ID, actor, "cost", job.Cost, cost,
					"Repriced for assigned subcontractor"))
				job.Cost = cost
			}
			if selling != job.SellingPrice {
				entries = append(entries, audit.New(job.ID, actor, "selling_price", job.SellingPrice, selling,
					"Repriced for assigned subcontractor"))
				job.SellingPrice = selling
			}
		}
	}

	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.assigned", job)
	return job, nil
}

// Complete marks delivery done and opens accounting review.
func (s *JobService) Complete(ctx context.Context, id string, actor audit.Actor) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	entries, err := lifecycle.Apply(job, models.StatusCompleted, actor, "Proof of delivery recorded")
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.completed", job)
	return job, nil
}

// CompleteDrop records one delivered drop with its proof-of-delivery URL.
func (s *JobService) CompleteDrop(ctx context.Context, id string, dropIndex int, podURL string) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	if dropIndex < 0 || dropIndex >= len(job.Drops) {
		return nil, ErrDropOutOfRange
	}
	now := timeutil.Now()
	job.Drops[dropIndex].Status = models.DropCompleted
	job.Drops[dropIndex].PodURL = podURL
	job.Drops[dropIndex].CompletedAt = &now

	if err := s.JobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.drop_completed", job)
	return job, nil
}

// Cancel aborts a job that has no carrier attached yet. Irreversible, and
// a reason is mandatory.
func (s *JobService) Cancel(ctx context.Context, id string, reason string, actor audit.Actor) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	entries, err := lifecycle.Apply(job, models.StatusCancelled, actor, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.cancelled", job)
	return job, nil
}

// Approve records accounting approval and locks the base cost for good.
func (s *JobService) Approve(ctx context.Context, id string, actor audit.Actor) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	entries, err := lifecycle.Approve(job, actor)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.approved", job)
	if s.Notify != nil {
		s.Notify.Send(fmt.Sprintf("Job %s approved by accounting (%s)", job.ID, actor.Name))
	}
	return job, nil
}

// Reject sends a completed job back to Assigned for rework. Validation
// happens before any write: an empty reason leaves job and audit log
// untouched.
func (s *JobService) Reject(ctx context.Context, id string, reason string, actor audit.Actor) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	entries, err := lifecycle.Reject(job, actor, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.rejected", job)
	if s.Notify != nil {
		s.Notify.Send(fmt.Sprintf("Job %s rejected by accounting: %s", job.ID, reason))
	}
	return job, nil
}

// SetBilling moves a completed job to Billed and records the billing
// document. Billing fields carry no meaning before completion.
func (s *JobService) SetBilling(ctx context.Context, id string, req *models.BillingRequest, actor audit.Actor) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	if job.Status != models.StatusCompleted {
		return nil, ErrNotYetCompleted
	}
	billingDate, err := timeutil.ParseInICT(timeutil.DateLayout, req.BillingDate)
	if err != nil {
		return nil, fmt.Errorf("invalid billing date: %w", err)
	}

	entries, err := lifecycle.Apply(job, models.StatusBilled, actor,
		fmt.Sprintf("Billing document %s issued", req.DocNumber))
	if err != nil {
		return nil, err
	}
	job.BillingDocNumber = strings.TrimSpace(req.DocNumber)
	job.BillingDate = &billingDate

	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.billed", job)
	return job, nil
}

// MarkPaid records the payment date for a billed job.
func (s *JobService) MarkPaid(ctx context.Context, id string, req *models.PaymentRequest, actor audit.Actor) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	paymentDate, err := timeutil.ParseInICT(timeutil.DateLayout, req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("invalid payment date: %w", err)
	}

	entries, err := lifecycle.MarkPaid(job, actor)
	if err != nil {
		return nil, err
	}
	job.PaymentDate = &paymentDate

	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.paid", job)
	return job, nil
}

// SetBaseCost is the accountant correction path; it refuses once the
// accounting lock is set.
func (s *JobService) SetBaseCost(ctx context.Context, id string, cost float64, reason string, actor audit.Actor) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	entries, err := lifecycle.SetBaseCost(job, cost, actor, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.cost_updated", job)
	return job, nil
}

// SetSellingPrice corrects the customer-side amount. The accounting lock
// covers the base cost only, so this stays available after approval.
func (s *JobService) SetSellingPrice(ctx context.Context, id string, price float64, reason string, actor audit.Actor) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	entries, err := lifecycle.SetSellingPrice(job, price, actor, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.selling_price_updated", job)
	return job, nil
}

// AddExtraCharge appends one extra-charge line item and recomputes the
// aggregate. Amounts may be negative (credits); the aggregate is always
// the plain sum of all entries.
func (s *JobService) AddExtraCharge(ctx context.Context, id string, req *models.ExtraChargeRequest, actor audit.Actor) (*models.Job, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, lifecycle.ErrReasonRequired
	}
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}

	job.ExtraCharges = append(job.ExtraCharges, models.ExtraChargeDetail{
		ID:     uuid.NewString(),
		Type:   strings.TrimSpace(req.Type),
		Amount: req.Amount,
		Reason: strings.TrimSpace(req.Reason),
		Status: models.AccountingPendingReview,
	})
	old := job.ExtraCharge
	job.ExtraCharge = sumExtraCharges(job.ExtraCharges)

	entries := []models.AuditLog{
		audit.New(job.ID, actor, "extra_charge", old, job.ExtraCharge, req.Reason),
	}
	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.extra_charge", job)
	return job, nil
}

// RemoveExtraCharge deletes a line item by its id and recomputes the
// aggregate.
func (s *JobService) RemoveExtraCharge(ctx context.Context, id, chargeID, reason string, actor audit.Actor) (*models.Job, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, lifecycle.ErrReasonRequired
	}
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}

	kept := job.ExtraCharges[:0]
	removed := false
	for _, c := range job.ExtraCharges {
		if c.ID == chargeID {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil, fmt.Errorf("extra charge %s not found on %s", chargeID, id)
	}
	job.ExtraCharges = kept
	old := job.ExtraCharge
	job.ExtraCharge = sumExtraCharges(job.ExtraCharges)

	entries := []models.AuditLog{
		audit.New(job.ID, actor, "extra_charge", old, job.ExtraCharge, reason),
	}
	if err := s.persist(ctx, job, entries); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "job.extra_charge", job)
	return job, nil
}

// HardDelete removes a job permanently. Admin-only, and the audit record
// goes in before the row disappears.
func (s *JobService) HardDelete(ctx context.Context, id, reason string, actor audit.Actor) error {
	if strings.TrimSpace(reason) == "" {
		return lifecycle.ErrReasonRequired
	}
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return ErrJobNotFound
	}

	entry := audit.New(job.ID, actor, "deleted", job.Status, "", reason)
	if err := s.AuditRepo.Append(ctx, entry); err != nil {
		return err
	}
	if err := s.JobRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, "job.deleted", job)
	return nil
}

func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context) ([]*models.Job, error) {
	return s.JobRepo.List(ctx)
}

// persist appends the audit entries, then writes the job.
func (s *JobService) persist(ctx context.Context, job *models.Job, entries []models.AuditLog) error {
	if err := s.AuditRepo.Append(ctx, entries...); err != nil {
		return err
	}
	return s.JobRepo.Update(ctx, job)
}

// afterWrite fans a job mutation out to the reactor, the dashboard cache
// and the realtime board.
func (s *JobService) afterWrite(ctx context.Context, event string, job *models.Job) {
	cache.InvalidateDashboard(ctx)
	if s.Pub != nil {
		s.Pub.Publish(event, job)
	}
	if s.Reactor != nil {
		s.Reactor.Trigger()
	}
}

func sumExtraCharges(charges []models.ExtraChargeDetail) float64 {
	var total float64
	for _, c := range charges {
		total += c.Amount
	}
	return total
}
