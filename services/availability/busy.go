package availability

import (
	"time"

	"slotsense/models"
)

// IsBusy reports whether t falls inside any busy interval. Containment is
// half-open: the interval start is busy, the interval end is not. Intervals
// with a missing start or end never match, so a malformed calendar entry can
// suppress nothing.
func IsBusy(t time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if b.Start.IsZero() || b.End.IsZero() {
			continue
		}
		if !t.Before(b.Start) && t.Before(b.End) {
			return true
		}
	}
	return false
}
