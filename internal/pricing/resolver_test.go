package pricing

import (
	"testing"

	"jrs-backend/internal/models"
)

func catalog() []models.PriceRecord {
	return []models.PriceRecord{
		{ID: 1, Origin: "Bangkok", Destination: "Chiang Mai", TruckType: "4W", Subcontractor: "Somchai Transport", BasePrice: 8000, SellingBasePrice: 10000, DropOffFee: 300},
		{ID: 2, Origin: "Bangkok", Destination: "Chiang Mai", TruckType: "4W", Subcontractor: "Narong Logistics", BasePrice: 7500, SellingBasePrice: 9800, DropOffFee: 250},
		{ID: 3, Origin: "Bangkok", Destination: "Chiang Mai", TruckType: "6W", Subcontractor: "Somchai Transport", BasePrice: 12000, SellingBasePrice: 15000, DropOffFee: 400},
		{ID: 4, Origin: "Bangkok", Destination: "Phuket", TruckType: "4W", Subcontractor: "Somchai Transport", BasePrice: 14000, SellingBasePrice: 17500, DropOffFee: 350},
	}
}

func TestResolve_ExactMatchAfterTrim(t *testing.T) {
	rec := Resolve(catalog(), "  Bangkok ", "Chiang Mai\t", " 4W", "")
	if rec == nil {
		t.Fatal("expected a match after trimming, got nil")
	}
	if rec.ID != 2 {
		t.Errorf("expected record 2 (cheapest on lane), got %d", rec.ID)
	}
}

func TestResolve_NoPartialMatch(t *testing.T) {
	cases := []struct {
		name                           string
		origin, destination, truckType string
	}{
		{"wrong origin", "Chiang Mai", "Chiang Mai", "4W"},
		{"wrong destination", "Bangkok", "Khon Kaen", "4W"},
		{"wrong truck type", "Bangkok", "Chiang Mai", "10W"},
		{"case mismatch", "bangkok", "Chiang Mai", "4W"},
		{"substring", "Bang", "Chiang Mai", "4W"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := Resolve(catalog(), tc.origin, tc.destination, tc.truckType, ""); rec != nil {
				t.Errorf("expected nil, got record %d", rec.ID)
			}
		})
	}
}

func TestResolve_SubcontractorPreference(t *testing.T) {
	rec := Resolve(catalog(), "Bangkok", "Chiang Mai", "4W", "Somchai Transport")
	if rec == nil {
		t.Fatal("expected a match, got nil")
	}
	if rec.ID != 1 {
		t.Errorf("expected subcontractor-specific record 1, got %d", rec.ID)
	}
}

func TestResolve_UnknownSubcontractorFallsBack(t *testing.T) {
	// A carrier with no record on the lane falls back to the generic pick.
	rec := Resolve(catalog(), "Bangkok", "Chiang Mai", "4W", "Ghost Carrier")
	if rec == nil {
		t.Fatal("expected a fallback match, got nil")
	}
	if rec.ID != 2 {
		t.Errorf("expected cheapest record 2, got %d", rec.ID)
	}
}

func TestResolve_CheapestTieBrokenByCatalogOrder(t *testing.T) {
	cat := []models.PriceRecord{
		{ID: 10, Origin: "A", Destination: "B", TruckType: "4W", Subcontractor: "X", BasePrice: 5000},
		{ID: 11, Origin: "A", Destination: "B", TruckType: "4W", Subcontractor: "Y", BasePrice: 5000},
	}
	rec := Resolve(cat, "A", "B", "4W", "")
	if rec == nil || rec.ID != 10 {
		t.Fatalf("expected first record to win the tie, got %+v", rec)
	}
}

func TestResolve_ReturnsCopy(t *testing.T) {
	cat := catalog()
	rec := Resolve(cat, "Bangkok", "Phuket", "4W", "")
	if rec == nil {
		t.Fatal("expected a match")
	}
	rec.BasePrice = 1
	if cat[3].BasePrice != 14000 {
		t.Error("Resolve must not alias the catalog slice")
	}
}

func TestMatches_ReturnsLaneInCatalogOrder(t *testing.T) {
	matches := Matches(catalog(), "Bangkok", "Chiang Mai", "4W")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ID != 1 || matches[1].ID != 2 {
		t.Errorf("expected catalog order [1 2], got [%d %d]", matches[0].ID, matches[1].ID)
	}
}

func TestTotals_DropFeeIsPassThrough(t *testing.T) {
	rec := &models.PriceRecord{BasePrice: 8000, SellingBasePrice: 10000, DropOffFee: 300}

	if got := TotalCost(rec, 3); got != 8900 {
		t.Errorf("TotalCost = %v, want 8900", got)
	}
	if got := TotalRevenue(rec, 3); got != 10900 {
		t.Errorf("TotalRevenue = %v, want 10900", got)
	}
	// Margin must not move with drop count: the fee has no markup.
	margin0 := TotalRevenue(rec, 0) - TotalCost(rec, 0)
	margin5 := TotalRevenue(rec, 5) - TotalCost(rec, 5)
	if margin0 != margin5 {
		t.Errorf("margin changed with drops: %v vs %v", margin0, margin5)
	}
}

func TestTotals_ZeroDrops(t *testing.T) {
	rec := &models.PriceRecord{BasePrice: 8000, SellingBasePrice: 10000, DropOffFee: 300}
	if got := TotalCost(rec, 0); got != 8000 {
		t.Errorf("TotalCost = %v, want 8000", got)
	}
}
