package availability

import (
	"context"
	"time"

	"slotsense/models"
	"slotsense/services/scheduling"
)

// AvailabilityService resolves a normalized booking against the external
// scheduling API. It never returns a Go error: every failure is folded into
// the result's status so the webhook boundary always has something to answer
// with.
type AvailabilityService interface {
	CheckAvailability(ctx context.Context, booking models.NormalizedBooking) models.AvailabilityResult
}

// DefaultAvailabilityService is the production resolver.
type DefaultAvailabilityService struct {
	Client scheduling.SchedulingClient
	Loc    *time.Location
}
