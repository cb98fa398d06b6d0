// Package pricing resolves lane prices from the catalog and computes job
// totals. Everything here is a pure computation over an already-loaded
// catalog; a miss is a normal business state ("pricing not yet available"),
// never an error.
package pricing

import (
	"strings"

	"jrs-backend/internal/models"
)

// Resolve matches a lane (origin, destination, truckType) against the
// catalog and returns a copy of the selected record, or nil when no record
// matches the lane at all.
//
// Matching is exact string equality after trimming surrounding whitespace
// on both sides. When subcontractor is non-empty and a record for that
// subcontractor exists on the lane, that record wins. Otherwise the cheapest
// base price on the lane is returned, ties broken by catalog order.
func Resolve(catalog []models.PriceRecord, origin, destination, truckType, subcontractor string) *models.PriceRecord {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	truckType = strings.TrimSpace(truckType)
	subcontractor = strings.TrimSpace(subcontractor)

	var best *models.PriceRecord
	for i := range catalog {
		rec := &catalog[i]
		if strings.TrimSpace(rec.Origin) != origin ||
			strings.TrimSpace(rec.Destination) != destination ||
			strings.TrimSpace(rec.TruckType) != truckType {
			continue
		}
		if subcontractor != "" && strings.TrimSpace(rec.Subcontractor) == subcontractor {
			out := *rec
			return &out
		}
		if best == nil || rec.BasePrice < best.BasePrice {
			best = rec
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// Matches returns every record on the lane, in catalog order. Callers
// surface the full list and let a human choose when more than one exists;
// the Resolve default pick is only a convenience.
func Matches(catalog []models.PriceRecord, origin, destination, truckType string) []models.PriceRecord {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	truckType = strings.TrimSpace(truckType)

	var out []models.PriceRecord
	for _, rec := range catalog {
		if strings.TrimSpace(rec.Origin) == origin &&
			strings.TrimSpace(rec.Destination) == destination &&
			strings.TrimSpace(rec.TruckType) == truckType {
			out = append(out, rec)
		}
	}
	return out
}

// TotalCost is the amount owed to the subcontractor: base price plus the
// flat per-stop fee for each drop.
func TotalCost(rec *models.PriceRecord, drops int) float64 {
	return rec.BasePrice + float64(drops)*rec.DropOffFee
}

// TotalRevenue is the amount billed to the customer. The drop-off fee is
// the same one used for cost: the fee is a deliberate pass-through with no
// markup for the subcontractor.
func TotalRevenue(rec *models.PriceRecord, drops int) float64 {
	return rec.SellingBasePrice + float64(drops)*rec.DropOffFee
}
