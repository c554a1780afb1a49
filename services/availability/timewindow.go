package availability

import (
	"time"
)

// parseISO parses an ISO-8601 instant as produced by the language model or
// the scheduling API. Fractional seconds are accepted.
func parseISO(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// sameMinute reports whether two instants fall on the same calendar minute in
// loc. Slot timestamps from the API can carry seconds or fractional noise, so
// equality is never judged below minute granularity.
func sameMinute(a, b time.Time, loc *time.Location) bool {
	la, lb := a.In(loc), b.In(loc)
	return la.Year() == lb.Year() &&
		la.Month() == lb.Month() &&
		la.Day() == lb.Day() &&
		la.Hour() == lb.Hour() &&
		la.Minute() == lb.Minute()
}

// localDate returns the calendar date of t in loc as YYYY-MM-DD.
func localDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// absDiff returns the absolute wall-clock distance between two instants.
func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
