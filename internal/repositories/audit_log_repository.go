package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"jrs-backend/internal/metrics"
	"jrs-backend/internal/models"
)

// AuditLogRepository is append-only. There is no update or delete: audit
// entries are the compliance record accounting relies on.
type AuditLogRepository struct {
	DB *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

// Append persists entries in the order given. The seq column preserves
// insertion order for timestamp ties.
func (r *AuditLogRepository) Append(ctx context.Context, entries ...models.AuditLog) error {
	query := `
		INSERT INTO audit_logs(id, job_id, user_id, user_name, user_role,
			ts, field, old_value, new_value, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, e := range entries {
		if _, err := r.DB.Exec(ctx, query,
			e.ID, e.JobID, e.UserID, e.UserName, e.UserRole,
			e.Timestamp, e.Field, e.OldValue, e.NewValue, e.Reason,
		); err != nil {
			return err
		}
		metrics.AuditEntriesTotal.Inc()
	}
	return nil
}

func (r *AuditLogRepository) List(ctx context.Context) ([]models.AuditLog, error) {
	return r.list(ctx, `
		SELECT id, job_id, user_id, user_name, user_role, ts, field, old_value, new_value, reason
		FROM audit_logs ORDER BY ts, seq`)
}

func (r *AuditLogRepository) ListByJob(ctx context.Context, jobID string) ([]models.AuditLog, error) {
	return r.list(ctx, `
		SELECT id, job_id, user_id, user_name, user_role, ts, field, old_value, new_value, reason
		FROM audit_logs WHERE job_id = $1 ORDER BY ts, seq`, jobID)
}

func (r *AuditLogRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.AuditLog, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(
			&e.ID, &e.JobID, &e.UserID, &e.UserName, &e.UserRole,
			&e.Timestamp, &e.Field, &e.OldValue, &e.NewValue, &e.Reason,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
