package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jrs-backend/internal/models"
)

type PriceRepository struct {
	DB *pgxpool.Pool
}

func NewPriceRepository(db *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{DB: db}
}

// List returns the whole catalog in insertion order.
func (r *PriceRepository) List(ctx context.Context) ([]models.PriceRecord, error) {
	query := `
		SELECT id, origin, destination, truck_type, subcontractor,
		       base_price, selling_base_price, drop_off_fee, payment_type, credit_days
		FROM price_records ORDER BY id
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.PriceRecord
	for rows.Next() {
		var rec models.PriceRecord
		var basePrice, sellingBase, dropFee *float64
		if err := rows.Scan(
			&rec.ID, &rec.Origin, &rec.Destination, &rec.TruckType, &rec.Subcontractor,
			&basePrice, &sellingBase, &dropFee, &rec.PaymentType, &rec.CreditDays,
		); err != nil {
			return nil, err
		}
		rec.BasePrice = coerceFloat(basePrice)
		rec.SellingBasePrice = coerceFloat(sellingBase)
		rec.DropOffFee = coerceFloat(dropFee)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ReplaceAll swaps the entire catalog in one transaction. The admin UI owns
// catalog mutation and always writes the full list; there are no partial
// patches.
func (r *PriceRepository) ReplaceAll(ctx context.Context, records []models.PriceRecord) error {
	for _, rec := range records {
		if rec.BasePrice < 0 || rec.SellingBasePrice < 0 {
			return fmt.Errorf("negative price on lane %s -> %s (%s)",
				rec.Origin, rec.Destination, rec.TruckType)
		}
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM price_records`); err != nil {
		return err
	}

	query := `
		INSERT INTO price_records(origin, destination, truck_type, subcontractor,
			base_price, selling_base_price, drop_off_fee, payment_type, credit_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, rec := range records {
		if _, err := tx.Exec(ctx, query,
			rec.Origin, rec.Destination, rec.TruckType, rec.Subcontractor,
			rec.BasePrice, rec.SellingBasePrice, rec.DropOffFee,
			rec.PaymentType, rec.CreditDays,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// coerceFloat maps NULL (and any NaN that slipped into the store) to 0 so
// downstream arithmetic stays well-defined. This is the store-boundary
// guard; business logic never sees an undefined number.
func coerceFloat(v *float64) float64 {
	if v == nil || *v != *v {
		return 0
	}
	return *v
}
