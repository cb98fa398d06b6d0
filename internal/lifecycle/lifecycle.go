// Package lifecycle is the single source of truth for legal job status
// transitions and the accounting review axis. Callers consult CanTransition
// before mutating and use Apply/Approve/Reject/SetBaseCost to perform the
// mutation; every function either fully applies a change and returns the
// audit entries it produced, or returns an error and leaves the job
// untouched. Partial application (status changed but no audit row) cannot
// happen.
package lifecycle

import (
	"errors"
	"fmt"

	"jrs-backend/internal/audit"
	"jrs-backend/internal/models"
)

var (
	// ErrInvalidTransition rejects a status change not in the table.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrReasonRequired rejects rejections/cancellations without a reason.
	ErrReasonRequired = errors.New("a non-empty reason is required")
	// ErrCostLocked rejects base-cost edits after accounting approval.
	ErrCostLocked = errors.New("base cost is locked by accounting approval")
	// ErrNotReviewable rejects accounting decisions on jobs that are not
	// completed and pending review.
	ErrNotReviewable = errors.New("job is not pending accounting review")
	// ErrAlreadyAssigned rejects cancellation once a carrier is attached.
	ErrAlreadyAssigned = errors.New("job already has a subcontractor or driver assigned")
)

// transitions is the forward transition table. The only backward move,
// Completed -> Assigned, is not listed here: it happens exclusively as the
// side effect of an accounting rejection (see Reject).
var transitions = map[string][]string{
	models.StatusPendingPricing: {models.StatusNewRequest, models.StatusCancelled},
	models.StatusNewRequest:     {models.StatusAssigned, models.StatusCancelled},
	models.StatusAssigned:       {models.StatusCompleted},
	models.StatusCompleted:      {models.StatusBilled},
	models.StatusBilled:         {},
	models.StatusCancelled:      {},
}

// InitialStatus derives the status of a freshly created job from whether
// the price resolver found a match for its lane.
func InitialStatus(priceFound bool) string {
	if priceFound {
		return models.StatusNewRequest
	}
	return models.StatusPendingPricing
}

// CanTransition reports whether moving job to target is legal. It encodes
// the table plus the guards that depend on job state: a job still awaiting
// pricing is never assignable, and cancellation is only possible while no
// carrier is attached.
func CanTransition(job *models.Job, target string) bool {
	if !models.ValidJobStatus(target) {
		return false
	}
	allowed, ok := transitions[job.Status]
	if !ok {
		return false
	}
	found := false
	for _, t := range allowed {
		if t == target {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if target == models.StatusCancelled && (job.Subcontractor != "" || job.DriverName != "") {
		return false
	}
	return true
}

// Apply moves job to target, emitting the audit entries for the change.
// Cancellation requires a non-empty reason; other transitions accept a
// caller-supplied reason or fall back to a canned description. On error the
// job is left unchanged.
func Apply(job *models.Job, target string, actor audit.Actor, reason string) ([]models.AuditLog, error) {
	if !CanTransition(job, target) {
		if target == models.StatusCancelled && (job.Subcontractor != "" || job.DriverName != "") {
			return nil, ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, target)
	}
	if target == models.StatusCancelled && reason == "" {
		return nil, ErrReasonRequired
	}
	if reason == "" {
		reason = fmt.Sprintf("Status changed from %s to %s", job.Status, target)
	}

	old := job.Status
	job.Status = target
	entries := []models.AuditLog{
		audit.New(job.ID, actor, "status", old, target, reason),
	}

	// Accounting review opens the moment a job completes.
	if target == models.StatusCompleted && job.AccountingStatus == models.AccountingNone {
		job.AccountingStatus = models.AccountingPendingReview
		entries = append(entries, audit.New(job.ID, actor, "accounting_status",
			models.AccountingNone, models.AccountingPendingReview, reason))
	}
	return entries, nil
}

// Approve records an accounting approval: accounting status moves to
// Approved and the base cost is locked permanently.
func Approve(job *models.Job, actor audit.Actor) ([]models.AuditLog, error) {
	if job.Status != models.StatusCompleted && job.Status != models.StatusBilled {
		return nil, ErrNotReviewable
	}
	if job.AccountingStatus != models.AccountingPendingReview {
		return nil, ErrNotReviewable
	}

	old := job.AccountingStatus
	job.AccountingStatus = models.AccountingApproved
	job.IsBaseCostLocked = true
	return []models.AuditLog{
		audit.New(job.ID, actor, "accounting_status", old, models.AccountingApproved,
			"Cost verified and approved by accounting"),
	}, nil
}

// Reject records an accounting rejection. A non-empty reason is mandatory;
// the job status is forced back to Assigned for rework (the only backward
// transition in the system) and the reason is kept as the accounting
// remark. Nothing is touched when validation fails.
func Reject(job *models.Job, actor audit.Actor, reason string) ([]models.AuditLog, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if job.Status != models.StatusCompleted {
		return nil, ErrNotReviewable
	}
	if job.AccountingStatus != models.AccountingPendingReview {
		return nil, ErrNotReviewable
	}

	oldAcct := job.AccountingStatus
	oldStatus := job.Status
	job.AccountingStatus = models.AccountingRejected
	job.AccountingRemark = reason
	job.Status = models.StatusAssigned
	return []models.AuditLog{
		audit.New(job.ID, actor, "accounting_status", oldAcct, models.AccountingRejected, reason),
		audit.New(job.ID, actor, "status", oldStatus, models.StatusAssigned, reason),
	}, nil
}

// SetBaseCost edits the base cost of a job, refusing once the accounting
// lock is in place. Manual edits must carry a reason.
func SetBaseCost(job *models.Job, cost float64, actor audit.Actor, reason string) ([]models.AuditLog, error) {
	if job.IsBaseCostLocked {
		return nil, ErrCostLocked
	}
	if reason == "" {
		return nil, ErrReasonRequired
	}
	old := job.Cost
	job.Cost = cost
	return []models.AuditLog{
		audit.New(job.ID, actor, "cost", old, cost, reason),
	}, nil
}

// SetSellingPrice edits the selling price. The accounting lock covers the
// base cost only; selling-side corrections stay possible but are audited.
func SetSellingPrice(job *models.Job, price float64, actor audit.Actor, reason string) ([]models.AuditLog, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	old := job.SellingPrice
	job.SellingPrice = price
	return []models.AuditLog{
		audit.New(job.ID, actor, "selling_price", old, price, reason),
	}, nil
}

// MarkPaid records payment for a billed job on the accounting axis.
func MarkPaid(job *models.Job, actor audit.Actor) ([]models.AuditLog, error) {
	if job.Status != models.StatusBilled {
		return nil, fmt.Errorf("%w: payment requires a billed job", ErrInvalidTransition)
	}
	old := job.AccountingStatus
	job.AccountingStatus = models.AccountingPaid
	return []models.AuditLog{
		audit.New(job.ID, actor, "accounting_status", old, models.AccountingPaid,
			"Payment to subcontractor recorded"),
	}, nil
}
