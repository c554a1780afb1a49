package intelligence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotsense/models"
	"slotsense/utils"

	"go.uber.org/zap"
)

const systemPromptTemplate = `You are an appointment scheduling agent for Creative Nails And Spa in Winnipeg (%s timezone).
The current date is:
%s

---

## Instructions

### Input Handling

- Input may be a single booking object or an array (up to 3 guests).
- Each booking object contains: "bookingtime", "assigned_stylist", and "duration_of_services".

### For Each Booking Object

- Parse "bookingtime" and convert it to ISO 8601 format in %s timezone as "start_time".
- Extract "duration" as an integer (in minutes) from "duration_of_services".
- Copy "assigned_stylist" as provided.
- Calculate "end_time" by adding the duration (in minutes) to "start_time", output in ISO 8601 format with the correct local offset.
- **Do not format as UTC**; always use the local offset (e.g., -05:00 or -06:00).

### Output Format

- For a single booking, return:

{
"start_time": "YYYY-MM-DDTHH:mm:00-05:00",
"duration": integer,
"assigned_stylist": "string",
"end_time": "YYYY-MM-DDTHH:mm:00-05:00"
}

- For multiple bookings, return an array of such objects.
- You only return the "output", no need to specify action or response

---

## Few-Shot Examples

**User Input 1 (Single Booking):**

{
"bookingtime": "next Tuesday at 2pm",
"assigned_stylist": "angelina@creativenails.ca",
"duration_of_services": "60 minutes"
}

**Agent Output:**

{
"start_time": "2025-05-13T14:00:00-05:00",
"duration": 60,
"assigned_stylist": "angelina@creativenails.ca",
"end_time": "2025-05-13T15:00:00-05:00"
}

---

**User Input 2 (Multiple Bookings):**

[
{
"bookingtime": "May 17th at 4pm",
"assigned_stylist": "isabelle@creativenails.ca",
"duration_of_services": "75 minutes"
},
{
"bookingtime": "May 17th at 4pm",
"assigned_stylist": "cathie@creativenails.ca",
"duration_of_services": "45 minutes"
}
]

**Agent Output:**

[
{
"start_time": "2025-05-17T16:00:00-05:00",
"duration": 75,
"assigned_stylist": "isabelle@creativenails.ca",
"end_time": "2025-05-17T17:15:00-05:00"
},
{
"start_time": "2025-05-17T16:00:00-05:00",
"duration": 45,
"assigned_stylist": "cathie@creativenails.ca",
"end_time": "2025-05-17T16:45:00-05:00"
}
]`

// DefaultNormalizerService resolves free-text booking times through the
// language model. Cache is optional and best-effort: a cache failure only
// logs, never fails normalization.
type DefaultNormalizerService struct {
	Model    ContentGenerator
	Cache    *NormalizationCache
	Timezone string
	Loc      *time.Location
}

// Normalize prompts the model with the raw payload and the current date in
// the booking timezone, then parses the first JSON value in the reply. An
// array reply resolves to its first booking only.
func (s *DefaultNormalizerService) Normalize(ctx context.Context, payload []byte) (models.NormalizedBooking, error) {
	logger := utils.GetLogger()

	now := time.Now().In(s.Loc)
	cacheKey := normalizationKey(payload, now)

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey); err != nil {
			logger.Warn("Normalize: cache lookup failed", zap.Error(err))
		} else if cached != nil {
			logger.Debug("Normalize: cache hit")
			return *cached, nil
		}
	}

	currentDate := now.Format("Monday, Jan 2, 2006, 03:04 PM")
	prompt := fmt.Sprintf(systemPromptTemplate, s.Timezone, currentDate, s.Timezone) +
		"\n\nThe input is as follow:\n" + string(payload)

	completion, err := s.Model.GenerateContent(ctx, prompt)
	if err != nil {
		return models.NormalizedBooking{}, fmt.Errorf("normalize booking time: %w", err)
	}

	booking, err := parseBookingJSON(completion)
	if err != nil {
		logger.Error("Normalize: could not parse model output",
			zap.String("output", completion), zap.Error(err))
		return models.NormalizedBooking{}, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, cacheKey, booking); err != nil {
			logger.Warn("Normalize: cache store failed", zap.Error(err))
		}
	}
	return booking, nil
}

// parseBookingJSON locates the first JSON value in the model's reply and
// decodes it, tolerating surrounding prose. Arrays resolve to their first
// element.
func parseBookingJSON(text string) (models.NormalizedBooking, error) {
	objIdx := strings.IndexByte(text, '{')
	arrIdx := strings.IndexByte(text, '[')

	start := objIdx
	if start == -1 || (arrIdx != -1 && arrIdx < start) {
		start = arrIdx
	}
	if start == -1 {
		return models.NormalizedBooking{}, errors.New("could not find JSON in the model's response")
	}

	dec := json.NewDecoder(strings.NewReader(text[start:]))
	var booking models.NormalizedBooking
	if text[start] == '[' {
		var bookings []models.NormalizedBooking
		if err := dec.Decode(&bookings); err != nil {
			return models.NormalizedBooking{}, fmt.Errorf("parse model output: %w", err)
		}
		if len(bookings) == 0 {
			return models.NormalizedBooking{}, errors.New("model returned an empty booking list")
		}
		// Only the first booking of a multi-guest request is resolved.
		booking = bookings[0]
	} else if err := dec.Decode(&booking); err != nil {
		return models.NormalizedBooking{}, fmt.Errorf("parse model output: %w", err)
	}

	if booking.StartTime == "" {
		return models.NormalizedBooking{}, errors.New("model output is missing start_time")
	}
	return booking, nil
}

func normalizationKey(payload []byte, now time.Time) string {
	h := sha256.New()
	h.Write(payload)
	h.Write([]byte(now.Format("2006-01-02")))
	return hex.EncodeToString(h.Sum(nil))
}
