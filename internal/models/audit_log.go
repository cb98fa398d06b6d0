package models

import "time"

// AuditLog is an immutable change record. Entries are append-only and are
// the compliance trail accounting relies on; nothing ever updates or
// reorders them after insert.
type AuditLog struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserRole  string    `json:"user_role"`
	Timestamp time.Time `json:"timestamp"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	Reason    string    `json:"reason"`
}
