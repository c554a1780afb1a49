package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"slotsense/models"
	"slotsense/utils"

	"go.uber.org/zap"
)

// CheckAvailability runs the primary availability path: query slots in a
// one-hour window around the desired interval, confirm an exact match, offer
// nearby times on the same date, or fall back to the wide-window search.
func (s *DefaultAvailabilityService) CheckAvailability(ctx context.Context, booking models.NormalizedBooking) models.AvailabilityResult {
	logger := utils.GetLogger()

	desiredStart, err := parseISO(booking.StartTime)
	if err != nil {
		logger.Error("CheckAvailability: invalid start time", zap.String("startTime", booking.StartTime), zap.Error(err))
		return errorResult("Error checking availability: " + err.Error())
	}
	desiredEnd, err := parseISO(booking.EndTime)
	if err != nil {
		logger.Error("CheckAvailability: invalid end time", zap.String("endTime", booking.EndTime), zap.Error(err))
		return errorResult("Error checking availability: " + err.Error())
	}

	// Query window is the desired interval padded by one hour on each side.
	queryStart := desiredStart.UTC().Add(-time.Hour)
	queryEnd := desiredEnd.UTC().Add(time.Hour)

	slots, err := s.Client.GetSlots(ctx, queryStart, queryEnd, booking.Duration)
	if err != nil {
		logger.Error("CheckAvailability: slot query failed", zap.Error(err))
		return errorResult("Error checking availability: " + err.Error())
	}
	logger.Debug("CheckAvailability: slots in primary window", zap.Int("count", len(slots)))

	if len(slots) == 0 {
		// Nothing bookable near the desired time at all.
		return s.checkWiderAvailability(ctx, booking)
	}

	desiredDate := localDate(desiredStart, s.Loc)
	var slotsForDate []parsedSlot
	for _, slot := range slots {
		t, perr := parseISO(slot.Start)
		if perr != nil {
			continue
		}
		if localDate(t, s.Loc) == desiredDate {
			slotsForDate = append(slotsForDate, parsedSlot{raw: slot.Start, at: t})
		}
	}

	for _, ps := range slotsForDate {
		if sameMinute(ps.at, desiredStart, s.Loc) {
			return availableResult(booking.StartTime, s.Loc)
		}
	}

	// The exact minute is taken; offer anything within an hour on that date.
	var nearbyTimes []string
	for _, ps := range slotsForDate {
		if absDiff(ps.at, desiredStart) <= time.Hour {
			nearbyTimes = append(nearbyTimes, FormatTime(ps.raw, s.Loc))
		}
	}
	if len(nearbyTimes) > 0 {
		return models.AvailabilityResult{
			Status: models.StatusUnavailable,
			Message: fmt.Sprintf(
				"The exact slot is not available, but I have nearby slots starting at [%s]. Ask the customer, otherwise run check_availability again?",
				strings.Join(nearbyTimes, ", ")),
		}
	}

	return s.checkWiderAvailability(ctx, booking)
}

// checkWiderAvailability is the fallback path: re-query five hours before the
// desired start through one day after the desired end, overlay the calendar's
// busy times, and rank alternatives by proximity.
func (s *DefaultAvailabilityService) checkWiderAvailability(ctx context.Context, booking models.NormalizedBooking) models.AvailabilityResult {
	logger := utils.GetLogger()

	desiredStart, err := parseISO(booking.StartTime)
	if err != nil {
		return errorResult("Error checking wider availability: " + err.Error())
	}
	desiredEnd, err := parseISO(booking.EndTime)
	if err != nil {
		return errorResult("Error checking wider availability: " + err.Error())
	}

	wideStart := desiredStart.In(s.Loc).Add(-5 * time.Hour).UTC()
	wideEnd := desiredEnd.In(s.Loc).AddDate(0, 0, 1).UTC()

	slots, err := s.Client.GetSlots(ctx, wideStart, wideEnd, booking.Duration)
	if err != nil {
		logger.Error("checkWiderAvailability: slot query failed", zap.Error(err))
		return errorResult("Error checking wider availability: " + err.Error())
	}

	busy, err := s.Client.GetBusyTimes(ctx, wideStart, wideEnd)
	if err != nil {
		logger.Error("checkWiderAvailability: busy-times query failed", zap.Error(err))
		return errorResult("Error checking wider availability: " + err.Error())
	}
	logger.Debug("checkWiderAvailability: wide window results",
		zap.Int("slots", len(slots)), zap.Int("busy", len(busy)))

	return s.searchProximitySlots(slots, busy, booking)
}

func availableResult(startTime string, loc *time.Location) models.AvailabilityResult {
	return models.AvailabilityResult{
		Status: models.StatusAvailable,
		Message: fmt.Sprintf(
			"The desired slot on %s with the selected stylist is currently available. You can proceed with booking.",
			FormatDateTime(startTime, loc)),
	}
}

func errorResult(message string) models.AvailabilityResult {
	return models.AvailabilityResult{Status: models.StatusError, Message: message}
}
