package timeutil

import (
	"testing"
	"time"
)

const ictOffset = 7 * 60 * 60

func TestNowIsICT(t *testing.T) {
	_, offset := Now().Zone()
	if offset != ictOffset {
		t.Errorf("offset = %d, want UTC+7", offset)
	}
}

func TestToICT(t *testing.T) {
	utc := time.Date(2026, time.August, 29, 20, 30, 0, 0, time.UTC)
	got := ToICT(utc)
	if got.Hour() != 3 || got.Day() != 30 {
		t.Errorf("ToICT(%v) = %v, want 03:30 on the 30th", utc, got)
	}
	if !got.Equal(utc) {
		t.Error("conversion must not change the instant")
	}
}

func TestParseInICT(t *testing.T) {
	got, err := ParseInICT(DateLayout, "2026-08-29")
	if err != nil {
		t.Fatal(err)
	}
	_, offset := got.Zone()
	if offset != ictOffset {
		t.Errorf("offset = %d, want UTC+7", offset)
	}
	if got.Year() != 2026 || got.Month() != time.August || got.Day() != 29 {
		t.Errorf("parsed %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("date-only parse must land on midnight, got %v", got)
	}
}
