package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"jrs-backend/internal/audit"
	"jrs-backend/internal/models"
)

type fakeJobStore struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newFakeJobStore(jobs ...*models.Job) *fakeJobStore {
	s := &fakeJobStore{jobs: make(map[string]*models.Job)}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	return s
}

func (s *fakeJobStore) ListByStatus(ctx context.Context, status string) ([]*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Job
	for _, j := range s.jobs {
		if j.Status == status {
			copied := *j
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeJobStore) UpdatePricing(ctx context.Context, id string, status string, cost, sellingPrice float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok || j.Status != models.StatusPendingPricing {
		return false, nil
	}
	j.Status = status
	j.Cost = cost
	j.SellingPrice = sellingPrice
	return true, nil
}

type fakeCatalog struct {
	mu      sync.Mutex
	records []models.PriceRecord
}

func (c *fakeCatalog) List(ctx context.Context) ([]models.PriceRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.PriceRecord(nil), c.records...), nil
}

func (c *fakeCatalog) set(records []models.PriceRecord) {
	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
}

type fakeAudits struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (a *fakeAudits) Append(ctx context.Context, entries ...models.AuditLog) error {
	a.mu.Lock()
	a.entries = append(a.entries, entries...)
	a.mu.Unlock()
	return nil
}

func pendingJob(id string) *models.Job {
	return &models.Job{
		ID:          id,
		Origin:      "Bangkok",
		Destination: "Chiang Mai",
		TruckType:   "4W",
		Status:      models.StatusPendingPricing,
		Drops: []models.DropDetail{
			{Location: "Warehouse A", Status: models.DropPending},
			{Location: "Warehouse B", Status: models.DropPending},
		},
	}
}

func laneRecord() models.PriceRecord {
	return models.PriceRecord{
		ID: 1, Origin: "Bangkok", Destination: "Chiang Mai", TruckType: "4W",
		Subcontractor: "Somchai Transport",
		BasePrice:     8000, SellingBasePrice: 10000, DropOffFee: 300,
	}
}

func TestRescan_PromotesWhenLaneAppears(t *testing.T) {
	jobs := newFakeJobStore(pendingJob("JRS-2026-0001"))
	catalog := &fakeCatalog{}
	audits := &fakeAudits{}
	svc := NewRepricingService(jobs, catalog, audits, nil)

	// No catalog yet: nothing to do.
	promoted, err := svc.Rescan(context.Background())
	if err != nil || promoted != 0 {
		t.Fatalf("empty catalog scan: promoted=%d err=%v", promoted, err)
	}

	catalog.set([]models.PriceRecord{laneRecord()})

	promoted, err = svc.Rescan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if promoted != 1 {
		t.Fatalf("promoted = %d, want 1", promoted)
	}

	job := jobs.jobs["JRS-2026-0001"]
	if job.Status != models.StatusNewRequest {
		t.Errorf("status = %q, want %q", job.Status, models.StatusNewRequest)
	}
	// Two drops at 300 each on top of the base amounts.
	if job.Cost != 8600 {
		t.Errorf("cost = %v, want 8600", job.Cost)
	}
	if job.SellingPrice != 10600 {
		t.Errorf("selling price = %v, want 10600", job.SellingPrice)
	}

	if len(audits.entries) != 1 {
		t.Fatalf("expected exactly one audit entry per promotion, got %d", len(audits.entries))
	}
	entry := audits.entries[0]
	if entry.UserID != audit.SystemUserID {
		t.Errorf("promotion entry must be attributed to the system, got %q", entry.UserID)
	}
	if entry.Reason != audit.AutoPromoteReason {
		t.Errorf("reason = %q", entry.Reason)
	}
	if entry.OldValue != models.StatusPendingPricing {
		t.Errorf("old value = %q", entry.OldValue)
	}
	if !strings.HasPrefix(entry.NewValue, models.StatusNewRequest) {
		t.Errorf("new value = %q, want it to start with %q", entry.NewValue, models.StatusNewRequest)
	}
}

func TestRescan_Idempotent(t *testing.T) {
	jobs := newFakeJobStore(pendingJob("JRS-2026-0001"))
	catalog := &fakeCatalog{records: []models.PriceRecord{laneRecord()}}
	audits := &fakeAudits{}
	svc := NewRepricingService(jobs, catalog, audits, nil)

	if _, err := svc.Rescan(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A second scan over the same inputs must change nothing.
	promoted, err := svc.Rescan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if promoted != 0 {
		t.Errorf("second scan promoted %d jobs, want 0", promoted)
	}
	if len(audits.entries) != 1 {
		t.Errorf("second scan added audit entries: total %d, want 1", len(audits.entries))
	}
}

func TestRescan_SkipsUnmatchedLanes(t *testing.T) {
	other := pendingJob("JRS-2026-0002")
	other.Destination = "Phuket"

	jobs := newFakeJobStore(pendingJob("JRS-2026-0001"), other)
	catalog := &fakeCatalog{records: []models.PriceRecord{laneRecord()}}
	audits := &fakeAudits{}
	svc := NewRepricingService(jobs, catalog, audits, nil)

	promoted, err := svc.Rescan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if promoted != 1 {
		t.Fatalf("promoted = %d, want 1", promoted)
	}
	if jobs.jobs["JRS-2026-0002"].Status != models.StatusPendingPricing {
		t.Error("unmatched job must stay in Pending Pricing")
	}
}

func TestRescan_LosesRaceGracefully(t *testing.T) {
	job := pendingJob("JRS-2026-0001")
	jobs := newFakeJobStore(job)
	catalog := &fakeCatalog{records: []models.PriceRecord{laneRecord()}}
	audits := &fakeAudits{}
	svc := NewRepricingService(jobs, catalog, audits, nil)

	// Simulate a user cancelling between the reactor's read and its write.
	listed, _ := jobs.ListByStatus(context.Background(), models.StatusPendingPricing)
	if len(listed) != 1 {
		t.Fatal("setup: expected one pending job")
	}
	jobs.jobs["JRS-2026-0001"].Status = models.StatusCancelled

	promoted, err := svc.Rescan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if promoted != 0 {
		t.Errorf("promoted = %d, want 0 after losing the race", promoted)
	}
	if len(audits.entries) != 0 {
		t.Error("no audit entry may be written for a promotion that did not happen")
	}
	if jobs.jobs["JRS-2026-0001"].Status != models.StatusCancelled {
		t.Error("the user's write must win")
	}
}

func TestStart_SpawnsItsOwnGoroutine(t *testing.T) {
	svc := NewRepricingService(newFakeJobStore(), &fakeCatalog{}, &fakeAudits{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Callers invoke Start synchronously; it must return at once.
	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start must return immediately and run its loop in the background")
	}
}

func TestTrigger_CoalescesWithoutBlocking(t *testing.T) {
	svc := NewRepricingService(newFakeJobStore(), &fakeCatalog{}, &fakeAudits{}, nil)

	// No consumer is running; repeated triggers must still return.
	for i := 0; i < 10; i++ {
		svc.Trigger()
	}
	if len(svc.trigger) != 1 {
		t.Errorf("trigger queue length = %d, want 1", len(svc.trigger))
	}
}
