package leave

import "time"

// CalculateDays returns the inclusive day count between from and to; a
// single-day leave counts as one day.
func CalculateDays(from, to time.Time) (int, error) {
	if to.Before(from) {
		return 0, ErrInvalidDates
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours()/24) + 1, nil
}
