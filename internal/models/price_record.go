package models

// PriceRecord is one lane-price row in the price catalog. A lane is the
// (origin, destination, truck_type) combination; several subcontractors may
// offer the same lane at different prices.
type PriceRecord struct {
	ID               int     `json:"id"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	TruckType        string  `json:"truck_type"`
	Subcontractor    string  `json:"subcontractor"`
	BasePrice        float64 `json:"base_price"`
	SellingBasePrice float64 `json:"selling_base_price"`
	DropOffFee       float64 `json:"drop_off_fee"`
	PaymentType      string  `json:"payment_type,omitempty"`
	CreditDays       int     `json:"credit_days,omitempty"`
}

// ReplaceCatalogRequest is the whole-list replacement payload. The admin UI
// owns catalog mutation and always sends the full list.
type ReplaceCatalogRequest struct {
	Records []PriceRecord `json:"records"`
}
