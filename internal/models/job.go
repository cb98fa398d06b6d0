package models

import "time"

// Job statuses. These are the exact strings persisted and rendered; anything
// else is rejected at the store boundary.
const (
	StatusNewRequest     = "New Request"
	StatusPendingPricing = "Pending Pricing"
	StatusAssigned       = "Assigned"
	StatusCompleted      = "Completed"
	StatusBilled         = "Billed"
	StatusCancelled      = "Cancelled"
)

// Accounting statuses. The accounting axis is independent of the job status
// and only becomes meaningful once the job reaches Completed.
const (
	AccountingNone          = ""
	AccountingPendingReview = "Pending Review"
	AccountingApproved      = "Approved"
	AccountingRejected      = "Rejected"
	AccountingLocked        = "Locked"
	AccountingPaid          = "Paid"
)

// Drop statuses.
const (
	DropPending   = "PENDING"
	DropCompleted = "COMPLETED"
)

// JobStatuses lists every legal job status.
var JobStatuses = []string{
	StatusNewRequest,
	StatusPendingPricing,
	StatusAssigned,
	StatusCompleted,
	StatusBilled,
	StatusCancelled,
}

// AccountingStatuses lists every legal accounting status, including the
// empty value used before a job completes.
var AccountingStatuses = []string{
	AccountingNone,
	AccountingPendingReview,
	AccountingApproved,
	AccountingRejected,
	AccountingLocked,
	AccountingPaid,
}

// ValidJobStatus reports whether s is an enumerated job status.
func ValidJobStatus(s string) bool {
	for _, v := range JobStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidAccountingStatus reports whether s is an enumerated accounting status.
func ValidAccountingStatus(s string) bool {
	for _, v := range AccountingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// DropDetail is an intermediate delivery stop. Each drop is billed via the
// flat per-stop fee of the matched price record.
type DropDetail struct {
	Location    string     `json:"location"`
	Status      string     `json:"status"`
	PodURL      string     `json:"pod_url,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ExtraChargeDetail is a financial line item attached to a job. Amount may
// be negative (credit/discount).
type ExtraChargeDetail struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
	Status string  `json:"status"`
}

// Job is the central entity: a transport request moving through booking,
// dispatch, delivery and accounting.
type Job struct {
	ID            string `json:"id"` // JRS-<year>-<4-digit-seq>
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	TruckType     string `json:"truck_type"`
	RequesterID   int    `json:"requester_id"`
	RequesterName string `json:"requester_name"`

	Subcontractor string `json:"subcontractor"`
	DriverName    string `json:"driver_name"`
	DriverPhone   string `json:"driver_phone"`
	LicensePlate  string `json:"license_plate"`

	Cost         float64             `json:"cost"`
	SellingPrice float64             `json:"selling_price"`
	ExtraCharge  float64             `json:"extra_charge"`
	ExtraCharges []ExtraChargeDetail `json:"extra_charges"`

	Status           string `json:"status"`
	AccountingStatus string `json:"accounting_status"`
	AccountingRemark string `json:"accounting_remark"`
	// One-way flag: set on accounting approval, after which the base cost
	// must never change again.
	IsBaseCostLocked bool `json:"is_base_cost_locked"`

	Drops []DropDetail `json:"drops"`

	BillingDocNumber string     `json:"billing_doc_number,omitempty"`
	BillingDate      *time.Time `json:"billing_date,omitempty"`
	PaymentDate      *time.Time `json:"payment_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profit is selling price plus extra charges minus cost. Extra charges are
// billed to the customer on top of the selling price.
func (j *Job) Profit() float64 {
	return j.SellingPrice + j.ExtraCharge - j.Cost
}

// CreateJobRequest is the booking-officer submission payload.
type CreateJobRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	TruckType   string   `json:"truck_type"`
	DropPoints  []string `json:"drop_points"`
}

// AssignJobRequest attaches a subcontractor and driver to a job.
type AssignJobRequest struct {
	Subcontractor string `json:"subcontractor"`
	DriverName    string `json:"driver_name"`
	DriverPhone   string `json:"driver_phone"`
	LicensePlate  string `json:"license_plate"`
}

// AccountingDecisionRequest carries an accountant's approve/reject decision.
// Reason is mandatory for rejections.
type AccountingDecisionRequest struct {
	Reason string `json:"reason"`
}

// CancelJobRequest carries the mandatory cancellation reason.
type CancelJobRequest struct {
	Reason string `json:"reason"`
}

// BillingRequest records the billing document for a completed job.
type BillingRequest struct {
	DocNumber   string `json:"doc_number"`
	BillingDate string `json:"billing_date"` // 2006-01-02
}

// PaymentRequest records the payment date for a billed job.
type PaymentRequest struct {
	PaymentDate string `json:"payment_date"` // 2006-01-02
}

// ExtraChargeRequest adds one extra-charge line item to a job.
type ExtraChargeRequest struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}
