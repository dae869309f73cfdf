package attendance

import "time"

// CheckInStatus classifies a check-in as PRESENT or LATE against the
// lateAfter threshold, parsed from "HH:MM" in the check-in's location.
func CheckInStatus(checkIn time.Time, lateAfter string) string {
	threshold, err := time.Parse("15:04", lateAfter)
	if err != nil {
		return StatusPresent
	}
	cutoff := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		threshold.Hour(), threshold.Minute(), 0, 0, checkIn.Location())
	if checkIn.After(cutoff) {
		return StatusLate
	}
	return StatusPresent
}

// TotalHours returns the worked span between check-in and check-out, rounded
// to two decimals.
func TotalHours(checkIn, checkOut time.Time) float64 {
	if checkOut.Before(checkIn) {
		return 0
	}
	hours := checkOut.Sub(checkIn).Hours()
	return float64(int(hours*100+0.5)) / 100
}

// DayOf truncates a timestamp to its calendar day in UTC; the attendance
// ledger keys rows by this value.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
