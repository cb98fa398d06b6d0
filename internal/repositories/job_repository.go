package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"jrs-backend/internal/models"
	"jrs-backend/internal/timeutil"
)

type JobRepository struct {
	DB *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{DB: db}
}

const jobColumns = `
	id, origin, destination, truck_type, requester_id, requester_name,
	subcontractor, driver_name, driver_phone, license_plate,
	cost, selling_price, extra_charge, extra_charges,
	status, accounting_status, accounting_remark, is_base_cost_locked,
	drops, billing_doc_number, billing_date, payment_date,
	created_at, updated_at`

// Create inserts a job, generating its id as JRS-<year>-<4-digit-seq>.
// The per-year sequence is derived inside the insert so concurrent
// creations cannot collide on a read-then-write race. It is the highest
// used suffix plus one, not a row count: hard deletes leave gaps, and a
// count would land back on an id that still exists.
func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	if !models.ValidJobStatus(j.Status) {
		return fmt.Errorf("invalid job status: %q", j.Status)
	}
	if !models.ValidAccountingStatus(j.AccountingStatus) {
		return fmt.Errorf("invalid accounting status: %q", j.AccountingStatus)
	}

	drops, err := json.Marshal(j.Drops)
	if err != nil {
		return err
	}
	extras, err := json.Marshal(j.ExtraCharges)
	if err != nil {
		return err
	}

	year := timeutil.Now().Year()
	prefix := fmt.Sprintf("JRS-%d-", year)

	query := `
		WITH next_num AS (
			SELECT COALESCE(MAX(CAST(SUBSTRING(id FROM LENGTH($1) + 1) AS INTEGER)), 0) + 1 AS num
			FROM jobs
			WHERE id LIKE $1 || '%'
		)
		INSERT INTO jobs(id, origin, destination, truck_type, requester_id, requester_name,
			subcontractor, driver_name, driver_phone, license_plate,
			cost, selling_price, extra_charge, extra_charges,
			status, accounting_status, accounting_remark, is_base_cost_locked, drops)
		SELECT $1 || LPAD(num::text, 4, '0'),
			$2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		FROM next_num
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		prefix,
		j.Origin, j.Destination, j.TruckType, j.RequesterID, j.RequesterName,
		j.Subcontractor, j.DriverName, j.DriverPhone, j.LicensePlate,
		j.Cost, j.SellingPrice, j.ExtraCharge, extras,
		j.Status, j.AccountingStatus, j.AccountingRemark, j.IsBaseCostLocked, drops,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
}

func (r *JobRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) List(ctx context.Context) ([]*models.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
}

func (r *JobRepository) ListByStatus(ctx context.Context, status string) ([]*models.Job, error) {
	return r.list(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at DESC`, status)
}

func (r *JobRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Job, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Update writes the full job row in one statement. All field writes land
// atomically; a concurrent writer sees either the old row or the new one,
// never a mix.
func (r *JobRepository) Update(ctx context.Context, j *models.Job) error {
	if !models.ValidJobStatus(j.Status) {
		return fmt.Errorf("invalid job status: %q", j.Status)
	}
	if !models.ValidAccountingStatus(j.AccountingStatus) {
		return fmt.Errorf("invalid accounting status: %q", j.AccountingStatus)
	}

	drops, err := json.Marshal(j.Drops)
	if err != nil {
		return err
	}
	extras, err := json.Marshal(j.ExtraCharges)
	if err != nil {
		return err
	}

	query := `
		UPDATE jobs SET
			origin = $2, destination = $3, truck_type = $4,
			subcontractor = $5, driver_name = $6, driver_phone = $7, license_plate = $8,
			cost = $9, selling_price = $10, extra_charge = $11, extra_charges = $12,
			status = $13, accounting_status = $14, accounting_remark = $15,
			is_base_cost_locked = $16, drops = $17,
			billing_doc_number = $18, billing_date = $19, payment_date = $20,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err = r.DB.Exec(ctx, query,
		j.ID, j.Origin, j.Destination, j.TruckType,
		j.Subcontractor, j.DriverName, j.DriverPhone, j.LicensePlate,
		j.Cost, j.SellingPrice, j.ExtraCharge, extras,
		j.Status, j.AccountingStatus, j.AccountingRemark,
		j.IsBaseCostLocked, drops,
		j.BillingDocNumber, j.BillingDate, j.PaymentDate,
	)
	return err
}

// UpdatePricing promotes a Pending Pricing job in a single guarded
// statement: status, cost and selling price land together, and the guard
// makes a second run (or a lost race against a user write) a no-op.
func (r *JobRepository) UpdatePricing(ctx context.Context, id string, status string, cost, sellingPrice float64) (bool, error) {
	tag, err := r.DB.Exec(ctx, `
		UPDATE jobs
		SET status = $2, cost = $3, selling_price = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`, id, status, cost, sellingPrice, models.StatusPendingPricing)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes a job permanently. Only the admin hard-delete path calls
// this, and only after the audit record is persisted.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	return err
}

// CountByStatus returns job counts grouped by status.
func (r *JobRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	j := &models.Job{}
	var cost, sellingPrice, extraCharge *float64
	var dropsRaw, extrasRaw []byte

	err := row.Scan(
		&j.ID, &j.Origin, &j.Destination, &j.TruckType, &j.RequesterID, &j.RequesterName,
		&j.Subcontractor, &j.DriverName, &j.DriverPhone, &j.LicensePlate,
		&cost, &sellingPrice, &extraCharge, &extrasRaw,
		&j.Status, &j.AccountingStatus, &j.AccountingRemark, &j.IsBaseCostLocked,
		&dropsRaw, &j.BillingDocNumber, &j.BillingDate, &j.PaymentDate,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Store-boundary coercion: undefined numerics become 0, malformed JSON
	// becomes an empty list. Business logic never sees untyped data.
	j.Cost = coerceFloat(cost)
	j.SellingPrice = coerceFloat(sellingPrice)
	j.ExtraCharge = coerceFloat(extraCharge)

	if err := json.Unmarshal(dropsRaw, &j.Drops); err != nil || j.Drops == nil {
		j.Drops = []models.DropDetail{}
	}
	if err := json.Unmarshal(extrasRaw, &j.ExtraCharges); err != nil || j.ExtraCharges == nil {
		j.ExtraCharges = []models.ExtraChargeDetail{}
	}
	return j, nil
}
