package models

import "time"

// Slot is a single bookable time reported by the scheduling API. The start is
// kept as the raw ISO-8601 string the API returned; consumers parse it and
// skip entries that do not parse.
type Slot struct {
	Start string `json:"start"`
}

// BusyInterval is a half-open [Start, End) range during which the calendar is
// externally committed. Slots inside it must never be offered.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityStatus is the outcome tag of an availability resolution.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusUnavailable AvailabilityStatus = "unavailable"
	StatusError       AvailabilityStatus = "error"
)

// AvailabilityResult is the sole output of the resolution pipeline and the
// webhook response body.
type AvailabilityResult struct {
	Status  AvailabilityStatus `json:"status"`
	Message string             `json:"message"`
}
