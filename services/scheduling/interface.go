package scheduling

import (
	"context"
	"time"

	"slotsense/models"
)

// SchedulingClient is the external scheduling API surface the resolver needs:
// bookable slots over a window, and the calendar's busy times over a window.
type SchedulingClient interface {
	GetSlots(ctx context.Context, start, end time.Time, durationMinutes int) ([]models.Slot, error)
	GetBusyTimes(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error)
}
