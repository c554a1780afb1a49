package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"slotsense/models"
	"slotsense/utils"

	"go.uber.org/zap"
)

// CalClient talks to the Cal.com v2 API.
type CalClient struct {
	BaseURL      string
	APIKey       string
	APIVersion   string
	EventTypeID  string
	CredentialID string
	ExternalID   string
	Timezone     string
	Loc          *time.Location
	HTTPClient   *http.Client
}

// NewCalClient builds a client with a bounded-timeout HTTP client.
func NewCalClient(baseURL, apiKey, apiVersion, eventTypeID, credentialID, externalID, timezone string, loc *time.Location) *CalClient {
	return &CalClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		APIVersion:   apiVersion,
		EventTypeID:  eventTypeID,
		CredentialID: credentialID,
		ExternalID:   externalID,
		Timezone:     timezone,
		Loc:          loc,
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// GetSlots queries bookable slots between start and end for the configured
// event type. The API groups slots by date; the groups are flattened into one
// list, and a group that fails to decode is skipped rather than failing the
// whole query.
func (c *CalClient) GetSlots(ctx context.Context, start, end time.Time, durationMinutes int) ([]models.Slot, error) {
	logger := utils.GetLogger()

	params := url.Values{}
	params.Set("start", start.UTC().Format(time.RFC3339))
	params.Set("end", end.UTC().Format(time.RFC3339))
	params.Set("eventTypeId", c.EventTypeID)
	params.Set("timeZone", c.Timezone)
	params.Set("duration", strconv.Itoa(durationMinutes))

	var payload struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := c.getJSON(ctx, c.BaseURL+"/slots", params, true, &payload); err != nil {
		return nil, err
	}

	var slots []models.Slot
	for dateKey, raw := range payload.Data {
		var dateSlots []models.Slot
		if err := json.Unmarshal(raw, &dateSlots); err != nil {
			logger.Warn("GetSlots: skipping malformed slot group",
				zap.String("date", dateKey), zap.Error(err))
			continue
		}
		slots = append(slots, dateSlots...)
	}
	return slots, nil
}

// GetBusyTimes queries the connected calendar's busy intervals between from
// and to, converted into the booking timezone. Entries that fail to parse are
// skipped.
func (c *CalClient) GetBusyTimes(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	logger := utils.GetLogger()

	params := url.Values{}
	params.Set("loggedInUsersTz", c.Timezone)
	params.Set("calendarsToLoad[0][credentialId]", c.CredentialID)
	params.Set("calendarsToLoad[0][externalId]", c.ExternalID)
	params.Set("dateFrom", from.UTC().Format(time.RFC3339))
	params.Set("dateTo", to.UTC().Format(time.RFC3339))

	var payload struct {
		Data []struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, c.BaseURL+"/calendars/busy-times", params, false, &payload); err != nil {
		return nil, err
	}

	var busy []models.BusyInterval
	for _, entry := range payload.Data {
		startT, err := time.Parse(time.RFC3339, entry.Start)
		if err != nil {
			logger.Warn("GetBusyTimes: skipping malformed busy entry", zap.Error(err))
			continue
		}
		endT, err := time.Parse(time.RFC3339, entry.End)
		if err != nil {
			logger.Warn("GetBusyTimes: skipping malformed busy entry", zap.Error(err))
			continue
		}
		busy = append(busy, models.BusyInterval{
			Start: startT.In(c.Loc),
			End:   endT.In(c.Loc),
		})
	}
	return busy, nil
}

func (c *CalClient) getJSON(ctx context.Context, endpoint string, params url.Values, versioned bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if versioned {
		req.Header.Set("cal-api-version", c.APIVersion)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("call scheduling API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scheduling API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode scheduling API response: %w", err)
	}
	return nil
}
