// Package audit builds the immutable change records required for every
// pricing- and accounting-relevant mutation. The constructor here is the
// single id/timestamp scheme for the whole codebase; call sites never build
// entries by hand.
package audit

import (
	"fmt"

	"github.com/google/uuid"

	"jrs-backend/internal/models"
	"jrs-backend/internal/timeutil"
)

// SystemUserID marks entries produced by the backend itself rather than a
// person, e.g. auto-repricing promotions.
const SystemUserID = "SYSTEM_BOT"

// AutoPromoteReason is the canned reason stamped on reactor promotions.
const AutoPromoteReason = "Auto-transition: matching price found."

// Actor identifies who caused a mutation.
type Actor struct {
	ID   string
	Name string
	Role string
}

// System is the sentinel actor for system-originated entries.
var System = Actor{ID: SystemUserID, Name: "System", Role: "system"}

// New produces one audit entry with a fresh uuid and the current timestamp.
// It never mutates existing entries; persisting the result is the caller's
// job.
func New(jobID string, actor Actor, field string, oldValue, newValue interface{}, reason string) models.AuditLog {
	return models.AuditLog{
		ID:        uuid.NewString(),
		JobID:     jobID,
		UserID:    actor.ID,
		UserName:  actor.Name,
		UserRole:  actor.Role,
		Timestamp: timeutil.Now(),
		Field:     field,
		OldValue:  formatValue(oldValue),
		NewValue:  formatValue(newValue),
		Reason:    reason,
	}
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// Trailing-zero free, matches how amounts are shown to accountants.
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
