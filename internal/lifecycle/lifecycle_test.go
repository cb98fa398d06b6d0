package lifecycle

import (
	"errors"
	"testing"

	"jrs-backend/internal/audit"
	"jrs-backend/internal/models"
)

var tester = audit.Actor{ID: "7", Name: "Malee", Role: models.RoleDispatcher}

func newJob(status string) *models.Job {
	return &models.Job{ID: "JRS-2026-0001", Status: status}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(true); got != models.StatusNewRequest {
		t.Errorf("priced job should start as %q, got %q", models.StatusNewRequest, got)
	}
	if got := InitialStatus(false); got != models.StatusPendingPricing {
		t.Errorf("unpriced job should start as %q, got %q", models.StatusPendingPricing, got)
	}
}

func TestCanTransition_Table(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.StatusPendingPricing, models.StatusNewRequest, true},
		{models.StatusPendingPricing, models.StatusCancelled, true},
		{models.StatusPendingPricing, models.StatusAssigned, false},
		{models.StatusNewRequest, models.StatusAssigned, true},
		{models.StatusNewRequest, models.StatusCancelled, true},
		{models.StatusNewRequest, models.StatusCompleted, false},
		{models.StatusAssigned, models.StatusCompleted, true},
		{models.StatusAssigned, models.StatusCancelled, false},
		{models.StatusCompleted, models.StatusBilled, true},
		{models.StatusCompleted, models.StatusAssigned, false}, // only via Reject
		{models.StatusBilled, models.StatusCompleted, false},
		{models.StatusCancelled, models.StatusNewRequest, false},
	}
	for _, tc := range cases {
		if got := CanTransition(newJob(tc.from), tc.to); got != tc.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestApply_CancelRequiresReason(t *testing.T) {
	job := newJob(models.StatusNewRequest)
	if _, err := Apply(job, models.StatusCancelled, tester, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
	if job.Status != models.StatusNewRequest {
		t.Errorf("failed cancel must not change status, got %q", job.Status)
	}
}

func TestApply_CancelBlockedOnceAssigned(t *testing.T) {
	job := newJob(models.StatusNewRequest)
	job.Subcontractor = "Somchai Transport"
	if _, err := Apply(job, models.StatusCancelled, tester, "customer withdrew"); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
}

func TestApply_CompleteOpensAccountingReview(t *testing.T) {
	job := newJob(models.StatusAssigned)
	entries, err := Apply(job, models.StatusCompleted, tester, "")
	if err != nil {
		t.Fatal(err)
	}
	if job.AccountingStatus != models.AccountingPendingReview {
		t.Errorf("accounting status = %q, want %q", job.AccountingStatus, models.AccountingPendingReview)
	}
	if len(entries) != 2 {
		t.Fatalf("expected status + accounting_status entries, got %d", len(entries))
	}
	if entries[0].Field != "status" || entries[1].Field != "accounting_status" {
		t.Errorf("unexpected entry fields: %q, %q", entries[0].Field, entries[1].Field)
	}
}

func TestApply_InvalidTransitionLeavesJobUntouched(t *testing.T) {
	job := newJob(models.StatusBilled)
	if _, err := Apply(job, models.StatusCompleted, tester, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if job.Status != models.StatusBilled {
		t.Errorf("status changed on failed transition: %q", job.Status)
	}
}

func TestApprove_LocksBaseCost(t *testing.T) {
	job := newJob(models.StatusCompleted)
	job.AccountingStatus = models.AccountingPendingReview
	job.Cost = 8000

	if _, err := Approve(job, tester); err != nil {
		t.Fatal(err)
	}
	if !job.IsBaseCostLocked {
		t.Fatal("approval must lock the base cost")
	}

	// The lock is one-way: later edits are refused and nothing moves.
	if _, err := SetBaseCost(job, 9000, tester, "late fuel surcharge"); !errors.Is(err, ErrCostLocked) {
		t.Fatalf("expected ErrCostLocked, got %v", err)
	}
	if job.Cost != 8000 {
		t.Errorf("locked cost changed to %v", job.Cost)
	}
}

func TestApprove_RequiresPendingReview(t *testing.T) {
	job := newJob(models.StatusCompleted)
	job.AccountingStatus = models.AccountingApproved
	if _, err := Approve(job, tester); !errors.Is(err, ErrNotReviewable) {
		t.Fatalf("expected ErrNotReviewable, got %v", err)
	}

	job = newJob(models.StatusAssigned)
	job.AccountingStatus = models.AccountingPendingReview
	if _, err := Approve(job, tester); !errors.Is(err, ErrNotReviewable) {
		t.Fatalf("expected ErrNotReviewable for non-completed job, got %v", err)
	}
}

func TestReject_ReopensJobForRework(t *testing.T) {
	job := newJob(models.StatusCompleted)
	job.AccountingStatus = models.AccountingPendingReview

	entries, err := Reject(job, tester, "POD missing for drop 2")
	if err != nil {
		t.Fatal(err)
	}
	if job.Status != models.StatusAssigned {
		t.Errorf("rejected job must return to %q, got %q", models.StatusAssigned, job.Status)
	}
	if job.AccountingStatus != models.AccountingRejected {
		t.Errorf("accounting status = %q, want %q", job.AccountingStatus, models.AccountingRejected)
	}
	if job.AccountingRemark != "POD missing for drop 2" {
		t.Errorf("remark = %q", job.AccountingRemark)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}

	// The reopened job can be completed and reviewed again.
	if _, err := Apply(job, models.StatusCompleted, tester, ""); err != nil {
		t.Fatalf("re-completion after rejection failed: %v", err)
	}
}

func TestReject_EmptyReasonIsNoOp(t *testing.T) {
	job := newJob(models.StatusCompleted)
	job.AccountingStatus = models.AccountingPendingReview

	if _, err := Reject(job, tester, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
	if job.Status != models.StatusCompleted || job.AccountingStatus != models.AccountingPendingReview {
		t.Error("failed rejection must leave the job untouched")
	}
}

func TestSetBaseCost_RequiresReason(t *testing.T) {
	job := newJob(models.StatusAssigned)
	if _, err := SetBaseCost(job, 9000, tester, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestSetSellingPrice_AvailableAfterCostLock(t *testing.T) {
	job := newJob(models.StatusCompleted)
	job.AccountingStatus = models.AccountingPendingReview
	if _, err := Approve(job, tester); err != nil {
		t.Fatal(err)
	}

	entries, err := SetSellingPrice(job, 11000, tester, "customer rate card update")
	if err != nil {
		t.Fatalf("selling price edit must survive the cost lock: %v", err)
	}
	if job.SellingPrice != 11000 {
		t.Errorf("selling price = %v", job.SellingPrice)
	}
	if len(entries) != 1 || entries[0].Field != "selling_price" {
		t.Errorf("unexpected audit entries: %+v", entries)
	}
}

func TestMarkPaid_RequiresBilled(t *testing.T) {
	job := newJob(models.StatusCompleted)
	if _, err := MarkPaid(job, tester); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	job = newJob(models.StatusBilled)
	job.AccountingStatus = models.AccountingApproved
	if _, err := MarkPaid(job, tester); err != nil {
		t.Fatal(err)
	}
	if job.AccountingStatus != models.AccountingPaid {
		t.Errorf("accounting status = %q, want %q", job.AccountingStatus, models.AccountingPaid)
	}
}
