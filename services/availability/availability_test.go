package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotsense/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSchedulingClient replays canned responses and records the windows it
// was queried with.
type fakeSchedulingClient struct {
	slotResponses [][]models.Slot
	slotErr       error
	busyResponse  []models.BusyInterval
	busyErr       error

	slotWindows [][2]time.Time
	busyCalls   int
}

func (f *fakeSchedulingClient) GetSlots(_ context.Context, start, end time.Time, _ int) ([]models.Slot, error) {
	f.slotWindows = append(f.slotWindows, [2]time.Time{start, end})
	if f.slotErr != nil {
		return nil, f.slotErr
	}
	call := len(f.slotWindows) - 1
	if call >= len(f.slotResponses) {
		return nil, nil
	}
	return f.slotResponses[call], nil
}

func (f *fakeSchedulingClient) GetBusyTimes(_ context.Context, _, _ time.Time) ([]models.BusyInterval, error) {
	f.busyCalls++
	if f.busyErr != nil {
		return nil, f.busyErr
	}
	return f.busyResponse, nil
}

func resolver(t *testing.T, client *fakeSchedulingClient) *DefaultAvailabilityService {
	t.Helper()
	return &DefaultAvailabilityService{Client: client, Loc: winnipeg(t)}
}

func TestCheckAvailabilityExactMatch(t *testing.T) {
	client := &fakeSchedulingClient{
		slotResponses: [][]models.Slot{{
			{Start: "2025-05-13T13:00:00-05:00"},
			{Start: "2025-05-13T14:00:00-05:00"},
		}},
	}
	s := resolver(t, client)

	result := s.CheckAvailability(context.Background(), desiredBooking())

	assert.Equal(t, models.StatusAvailable, result.Status)
	assert.Contains(t, result.Message, "May 13, 2025 at 2:00 PM")
	require.Len(t, client.slotWindows, 1)
	assert.Equal(t, 0, client.busyCalls)

	// Query window is the desired interval padded by an hour on each side.
	wantStart := mustParse(t, "2025-05-13T14:00:00-05:00").UTC().Add(-time.Hour)
	wantEnd := mustParse(t, "2025-05-13T15:00:00-05:00").UTC().Add(time.Hour)
	assert.True(t, client.slotWindows[0][0].Equal(wantStart))
	assert.True(t, client.slotWindows[0][1].Equal(wantEnd))
}

func TestCheckAvailabilityNearbySlots(t *testing.T) {
	client := &fakeSchedulingClient{
		slotResponses: [][]models.Slot{{
			{Start: "2025-05-13T13:30:00-05:00"},
			{Start: "2025-05-13T15:00:00-05:00"},
		}},
	}
	s := resolver(t, client)

	result := s.CheckAvailability(context.Background(), desiredBooking())

	assert.Equal(t, models.StatusUnavailable, result.Status)
	assert.Equal(t,
		"The exact slot is not available, but I have nearby slots starting at [1:30 PM, 3:00 PM]. Ask the customer, otherwise run check_availability again?",
		result.Message)
	// Both offers are within the hour, so no escalation happened.
	assert.Len(t, client.slotWindows, 1)
	assert.Equal(t, 0, client.busyCalls)
}

func TestCheckAvailabilityEscalatesOnEmptyWindow(t *testing.T) {
	client := &fakeSchedulingClient{
		slotResponses: [][]models.Slot{
			{}, // primary window: nothing
			{
				{Start: "2025-05-13T10:00:00-05:00"},
				{Start: "2025-05-14T09:00:00-05:00"},
			},
		},
	}
	s := resolver(t, client)

	result := s.CheckAvailability(context.Background(), desiredBooking())

	assert.Equal(t, models.StatusUnavailable, result.Status)
	assert.Equal(t,
		"The desired slot is not available. Available today at [10:00 AM], and tomorrow at [9:00 AM].",
		result.Message)
	require.Len(t, client.slotWindows, 2)
	assert.Equal(t, 1, client.busyCalls)

	// Wide window runs from five hours before the start to a day after the end.
	wantStart := mustParse(t, "2025-05-13T09:00:00-05:00").UTC()
	wantEnd := mustParse(t, "2025-05-14T15:00:00-05:00").UTC()
	assert.True(t, client.slotWindows[1][0].Equal(wantStart))
	assert.True(t, client.slotWindows[1][1].Equal(wantEnd))
}

func TestCheckAvailabilityEscalatesWhenDesiredDateEmpty(t *testing.T) {
	// The primary window has slots, but none on the desired date: straight to
	// the wide-window path, not the nearby-slot message.
	client := &fakeSchedulingClient{
		slotResponses: [][]models.Slot{
			{{Start: "2025-05-14T09:00:00-05:00"}},
			{{Start: "2025-05-14T09:00:00-05:00"}},
		},
	}
	s := resolver(t, client)

	result := s.CheckAvailability(context.Background(), desiredBooking())

	assert.Equal(t, models.StatusUnavailable, result.Status)
	assert.Equal(t,
		"The desired slot is not available. Available tomorrow at [9:00 AM].",
		result.Message)
	assert.Len(t, client.slotWindows, 2)
}

func TestCheckAvailabilityEscalatesWhenNothingNearby(t *testing.T) {
	// A slot exists on the desired date but more than an hour away.
	client := &fakeSchedulingClient{
		slotResponses: [][]models.Slot{
			{{Start: "2025-05-13T10:00:00-05:00"}},
			{{Start: "2025-05-13T10:00:00-05:00"}},
		},
	}
	s := resolver(t, client)

	result := s.CheckAvailability(context.Background(), desiredBooking())

	assert.Equal(t, models.StatusUnavailable, result.Status)
	assert.Equal(t,
		"The desired slot is not available. Available today at [10:00 AM].",
		result.Message)
	assert.Len(t, client.slotWindows, 2)
}

func TestCheckAvailabilityBusyOverlay(t *testing.T) {
	client := &fakeSchedulingClient{
		slotResponses: [][]models.Slot{
			{},
			{
				{Start: "2025-05-13T10:00:00-05:00"},
				{Start: "2025-05-13T11:00:00-05:00"},
			},
		},
		busyResponse: []models.BusyInterval{{
			Start: mustParse(t, "2025-05-13T09:30:00-05:00"),
			End:   mustParse(t, "2025-05-13T10:30:00-05:00"),
		}},
	}
	s := resolver(t, client)

	result := s.CheckAvailability(context.Background(), desiredBooking())

	assert.Equal(t, models.StatusUnavailable, result.Status)
	assert.Equal(t,
		"The desired slot is not available. Available today at [11:00 AM].",
		result.Message)
}

func TestCheckAvailabilityErrors(t *testing.T) {
	t.Run("slot query failure", func(t *testing.T) {
		client := &fakeSchedulingClient{slotErr: errors.New("connection refused")}
		s := resolver(t, client)

		result := s.CheckAvailability(context.Background(), desiredBooking())

		assert.Equal(t, models.StatusError, result.Status)
		assert.Contains(t, result.Message, "Error checking availability")
		assert.Contains(t, result.Message, "connection refused")
	})

	t.Run("busy query failure on the wide path", func(t *testing.T) {
		client := &fakeSchedulingClient{
			slotResponses: [][]models.Slot{{}, {{Start: "2025-05-13T10:00:00-05:00"}}},
			busyErr:       errors.New("upstream 502"),
		}
		s := resolver(t, client)

		result := s.CheckAvailability(context.Background(), desiredBooking())

		assert.Equal(t, models.StatusError, result.Status)
		assert.Contains(t, result.Message, "Error checking wider availability")
	})

	t.Run("unparsable start time", func(t *testing.T) {
		client := &fakeSchedulingClient{}
		s := resolver(t, client)

		booking := desiredBooking()
		booking.StartTime = "sometime soon"
		result := s.CheckAvailability(context.Background(), booking)

		assert.Equal(t, models.StatusError, result.Status)
		assert.Empty(t, client.slotWindows)
	})
}
