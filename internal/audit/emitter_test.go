package audit

import (
	"testing"
	"time"

	"jrs-backend/internal/timeutil"
)

func TestNew_StampsIdentityAndTime(t *testing.T) {
	actor := Actor{ID: "3", Name: "Niran", Role: "accountant"}
	before := timeutil.Now()

	entry := New("JRS-2026-0042", actor, "cost", 8000.0, 8500.0, "fuel surcharge")

	if entry.ID == "" {
		t.Error("entry must carry a generated id")
	}
	if entry.JobID != "JRS-2026-0042" {
		t.Errorf("job id = %q", entry.JobID)
	}
	if entry.UserID != "3" || entry.UserName != "Niran" || entry.UserRole != "accountant" {
		t.Errorf("actor not stamped: %+v", entry)
	}
	if entry.OldValue != "8000" || entry.NewValue != "8500" {
		t.Errorf("values = %q -> %q, want 8000 -> 8500", entry.OldValue, entry.NewValue)
	}
	if entry.Reason != "fuel surcharge" {
		t.Errorf("reason = %q", entry.Reason)
	}
	if entry.Timestamp.Before(before) || entry.Timestamp.After(timeutil.Now().Add(time.Second)) {
		t.Errorf("timestamp out of range: %v", entry.Timestamp)
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New("JRS-2026-0001", System, "status", "a", "b", "x")
	b := New("JRS-2026-0001", System, "status", "a", "b", "x")
	if a.ID == b.ID {
		t.Error("consecutive entries must not share an id")
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"Assigned", "Assigned"},
		{8000.0, "8000"},
		{8500.5, "8500.5"},
		{3, "3"},
		{true, "true"},
	}
	for _, tc := range cases {
		if got := formatValue(tc.in); got != tc.want {
			t.Errorf("formatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSystemActor(t *testing.T) {
	entry := New("JRS-2026-0001", System, "status", "Pending Pricing", "New Request", AutoPromoteReason)
	if entry.UserID != SystemUserID {
		t.Errorf("system entry user id = %q, want %q", entry.UserID, SystemUserID)
	}
}
