package availability

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"slotsense/models"
)

// alternativesCap bounds how many same-day and next-day suggestions a message
// carries.
const alternativesCap = 5

// parsedSlot pairs a slot's raw ISO string with its parsed instant so
// suggestions can be formatted from the exact text the API returned.
type parsedSlot struct {
	raw string
	at  time.Time
}

// searchProximitySlots decides availability over the wide-window slot list.
// If the desired minute is offered and not busy it short-circuits to an
// available result. Otherwise it suggests up to five non-busy slots on the
// desired date, ranked by closeness to the desired time but presented in
// chronological order, plus up to five slots on the following date in plain
// chronological order. Slots that fail to parse are skipped individually.
func (s *DefaultAvailabilityService) searchProximitySlots(available []models.Slot, busy []models.BusyInterval, desired models.NormalizedBooking) models.AvailabilityResult {
	desiredStart, derr := parseISO(desired.StartTime)

	// The desired calendar date comes from the string itself, which carries
	// the local booking-timezone offset.
	desiredDate := ""
	if i := strings.IndexByte(desired.StartTime, 'T'); i > 0 {
		desiredDate = desired.StartTime[:i]
	}

	if derr == nil {
		for _, slot := range available {
			t, err := parseISO(slot.Start)
			if err != nil {
				continue
			}
			if sameMinute(t, desiredStart, s.Loc) && !IsBusy(t, busy) {
				return availableResult(desired.StartTime, s.Loc)
			}
		}
	}

	// Group the non-busy slots by their local calendar date.
	slotsByDate := make(map[string][]parsedSlot)
	for _, slot := range available {
		t, err := parseISO(slot.Start)
		if err != nil {
			continue
		}
		if IsBusy(t, busy) {
			continue
		}
		d := localDate(t, s.Loc)
		slotsByDate[d] = append(slotsByDate[d], parsedSlot{raw: slot.Start, at: t})
	}

	// Same-day candidates, minus the slot equal to the desired minute.
	var sameDay []parsedSlot
	for _, ps := range slotsByDate[desiredDate] {
		if derr == nil && sameMinute(ps.at, desiredStart, s.Loc) {
			continue
		}
		sameDay = append(sameDay, ps)
	}

	var sameDaySorted []parsedSlot
	if derr == nil && len(sameDay) > 0 {
		ranked := append([]parsedSlot(nil), sameDay...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return absDiff(ranked[i].at, desiredStart) < absDiff(ranked[j].at, desiredStart)
		})
		if len(ranked) > alternativesCap {
			ranked = ranked[:alternativesCap]
		}
		// Closest-first is how we choose; chronological is how we present.
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].at.Before(ranked[j].at)
		})
		sameDaySorted = ranked
	} else {
		sameDaySorted = sameDay
		if len(sameDaySorted) > alternativesCap {
			sameDaySorted = sameDaySorted[:alternativesCap]
		}
	}

	var nextDaySorted []parsedSlot
	if derr == nil {
		nextDay := localDate(desiredStart.In(s.Loc).AddDate(0, 0, 1), s.Loc)
		nextDaySorted = append([]parsedSlot(nil), slotsByDate[nextDay]...)
		sort.SliceStable(nextDaySorted, func(i, j int) bool {
			return nextDaySorted[i].at.Before(nextDaySorted[j].at)
		})
		if len(nextDaySorted) > alternativesCap {
			nextDaySorted = nextDaySorted[:alternativesCap]
		}
	}

	sameDayTimes := formatSlotTimes(sameDaySorted, s.Loc)
	nextDayTimes := formatSlotTimes(nextDaySorted, s.Loc)

	message := "The desired slot is not available."
	switch {
	case len(sameDayTimes) > 0 && len(nextDayTimes) > 0:
		message += fmt.Sprintf(" Available today at [%s], and tomorrow at [%s].",
			strings.Join(sameDayTimes, ", "), strings.Join(nextDayTimes, ", "))
	case len(sameDayTimes) > 0:
		message += fmt.Sprintf(" Available today at [%s].", strings.Join(sameDayTimes, ", "))
	case len(nextDayTimes) > 0:
		message += fmt.Sprintf(" Available tomorrow at [%s].", strings.Join(nextDayTimes, ", "))
	default:
		message += " Please try another date."
	}

	return models.AvailabilityResult{Status: models.StatusUnavailable, Message: message}
}

func formatSlotTimes(slots []parsedSlot, loc *time.Location) []string {
	var times []string
	for _, ps := range slots {
		times = append(times, FormatTime(ps.raw, loc))
	}
	return times
}
