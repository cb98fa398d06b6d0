package timeutil

import (
	"time"
)

// ICT is the Indochina Time location (UTC+7). All business timestamps
// (job dates, billing dates, audit entries) are recorded in ICT.
var ICT *time.Location

func init() {
	var err error
	ICT, err = time.LoadLocation("Asia/Bangkok")
	if err != nil {
		// Fallback: create fixed zone if Asia/Bangkok not available
		ICT = time.FixedZone("ICT", 7*60*60) // UTC+7
	}
}

// Now returns the current time in ICT
func Now() time.Time {
	return time.Now().In(ICT)
}

// ToICT converts any time to ICT
func ToICT(t time.Time) time.Time {
	return t.In(ICT)
}

// ParseInICT parses a time string and returns it in ICT
func ParseInICT(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, ICT)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Common layouts for ICT formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)
