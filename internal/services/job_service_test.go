package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"jrs-backend/internal/audit"
	"jrs-backend/internal/models"
	"jrs-backend/internal/timeutil"
)

// Create assigns ids the way the jobs table does: per-year prefix, then
// the highest used numeric suffix plus one. Gaps left by hard deletes are
// never refilled, so an id can never collide with a surviving row.
func (s *fakeJobStore) Create(ctx context.Context, j *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := fmt.Sprintf("JRS-%d-", timeutil.Now().Year())
	high := 0
	for id := range s.jobs {
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err == nil && n > high {
			high = n
		}
	}
	j.ID = fmt.Sprintf("%s%04d", prefix, high+1)
	if _, exists := s.jobs[j.ID]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint: %s", j.ID)
	}
	copied := *j
	s.jobs[j.ID] = &copied
	return nil
}

func (s *fakeJobStore) Get(ctx context.Context, id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("no rows in result set")
	}
	copied := *j
	return &copied, nil
}

func (s *fakeJobStore) List(ctx context.Context) ([]*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Job
	for _, j := range s.jobs {
		copied := *j
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeJobStore) Update(ctx context.Context, j *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.ID]; !ok {
		return fmt.Errorf("no rows in result set")
	}
	copied := *j
	s.jobs[j.ID] = &copied
	return nil
}

func (s *fakeJobStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
	return nil
}

var booker = audit.Actor{ID: "2", Name: "Anong", Role: models.RoleBooking}

func newJobService(store *fakeJobStore, catalog *fakeCatalog, audits *fakeAudits) *JobService {
	return NewJobService(store, catalog, audits, nil, nil, nil)
}

func TestCreate_UnpricedLaneEntersPendingPricing(t *testing.T) {
	store := newFakeJobStore()
	audits := &fakeAudits{}
	svc := newJobService(store, &fakeCatalog{}, audits)

	job, err := svc.Create(context.Background(), &models.CreateJobRequest{
		Origin:      "Bangkok",
		Destination: "Khon Kaen",
		TruckType:   "4W",
		DropPoints:  []string{"Depot 1"},
	}, booker, 2)
	if err != nil {
		t.Fatal(err)
	}

	if job.Status != models.StatusPendingPricing {
		t.Errorf("status = %q, want %q", job.Status, models.StatusPendingPricing)
	}
	if job.Cost != 0 || job.SellingPrice != 0 {
		t.Errorf("unpriced job must carry zero amounts, got cost=%v selling=%v",
			job.Cost, job.SellingPrice)
	}
	if len(audits.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1 (status only, no pricing entries)", len(audits.entries))
	}
	if audits.entries[0].Field != "status" || audits.entries[0].NewValue != models.StatusPendingPricing {
		t.Errorf("unexpected audit entry: %+v", audits.entries[0])
	}
}

func TestCreate_MatchedLanePricedOnCreation(t *testing.T) {
	store := newFakeJobStore()
	catalog := &fakeCatalog{records: []models.PriceRecord{laneRecord()}}
	svc := newJobService(store, catalog, &fakeAudits{})

	job, err := svc.Create(context.Background(), &models.CreateJobRequest{
		Origin:      "Bangkok",
		Destination: "Chiang Mai",
		TruckType:   "4W",
		DropPoints:  []string{"Warehouse A", "Warehouse B"},
	}, booker, 2)
	if err != nil {
		t.Fatal(err)
	}

	if job.Status != models.StatusNewRequest {
		t.Errorf("status = %q, want %q", job.Status, models.StatusNewRequest)
	}
	if job.Cost != 8600 {
		t.Errorf("cost = %v, want 8600 (base 8000 + 2 drops at 300)", job.Cost)
	}
	if job.SellingPrice != 10600 {
		t.Errorf("selling price = %v, want 10600", job.SellingPrice)
	}
	prefix := fmt.Sprintf("JRS-%d-", timeutil.Now().Year())
	if job.ID != prefix+"0001" {
		t.Errorf("id = %q, want %q", job.ID, prefix+"0001")
	}
}

func TestCreate_IDSequenceSurvivesHardDelete(t *testing.T) {
	store := newFakeJobStore()
	svc := newJobService(store, &fakeCatalog{}, &fakeAudits{})
	admin := audit.Actor{ID: "1", Name: "Admin", Role: models.RoleAdmin}

	req := func(dest string) *models.CreateJobRequest {
		return &models.CreateJobRequest{Origin: "Bangkok", Destination: dest, TruckType: "4W"}
	}

	var ids []string
	for i := 0; i < 5; i++ {
		job, err := svc.Create(context.Background(), req(fmt.Sprintf("Stop %d", i)), booker, 2)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, job.ID)
	}

	if err := svc.HardDelete(context.Background(), ids[1], "duplicate booking", admin); err != nil {
		t.Fatal(err)
	}

	job, err := svc.Create(context.Background(), req("Stop 5"), booker, 2)
	if err != nil {
		t.Fatalf("create after hard delete must not collide: %v", err)
	}
	if !strings.HasSuffix(job.ID, "0006") {
		t.Errorf("id = %q, want suffix 0006 (deleted sequence numbers stay burned)", job.ID)
	}
	for _, id := range ids {
		if job.ID == id {
			t.Errorf("new id %q reuses an earlier id", job.ID)
		}
	}
}
