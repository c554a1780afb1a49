package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"slotsense/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNormalizer struct {
	booking models.NormalizedBooking
	err     error
}

func (f *fakeNormalizer) Normalize(_ context.Context, _ []byte) (models.NormalizedBooking, error) {
	return f.booking, f.err
}

type fakeAvailability struct {
	result models.AvailabilityResult
}

func (f *fakeAvailability) CheckAvailability(_ context.Context, _ models.NormalizedBooking) models.AvailabilityResult {
	return f.result
}

func webhookRequest(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhook/test", h.HandleWebhook)

	req := httptest.NewRequest(http.MethodPost, "/webhook/test", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) models.AvailabilityResult {
	t.Helper()
	var result models.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestHandleWebhookAvailable(t *testing.T) {
	h := NewWebhookHandler(
		&fakeNormalizer{booking: models.NormalizedBooking{
			StartTime: "2025-05-13T14:00:00-05:00",
			EndTime:   "2025-05-13T15:00:00-05:00",
			Duration:  60,
		}},
		&fakeAvailability{result: models.AvailabilityResult{
			Status:  models.StatusAvailable,
			Message: "The desired slot on May 13, 2025 at 2:00 PM with the selected stylist is currently available. You can proceed with booking.",
		}},
		zap.NewNop(),
	)

	w := webhookRequest(t, h, `{"bookingtime":"next Tuesday at 2pm"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodeResult(t, w)
	assert.Equal(t, models.StatusAvailable, result.Status)
	assert.Contains(t, result.Message, "currently available")
}

func TestHandleWebhookNormalizationFailure(t *testing.T) {
	h := NewWebhookHandler(
		&fakeNormalizer{err: errors.New("could not find JSON in the model's response")},
		&fakeAvailability{},
		zap.NewNop(),
	)

	w := webhookRequest(t, h, `{"bookingtime":"gibberish"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	result := decodeResult(t, w)
	assert.Equal(t, models.StatusError, result.Status)
	assert.Equal(t, "Could not process booking information", result.Message)
}

func TestHandleWebhookResolverError(t *testing.T) {
	// Scheduling API failures answer in-band with a 200, never a 5xx.
	h := NewWebhookHandler(
		&fakeNormalizer{booking: models.NormalizedBooking{StartTime: "2025-05-13T14:00:00-05:00"}},
		&fakeAvailability{result: models.AvailabilityResult{
			Status:  models.StatusError,
			Message: "Error checking availability: connection refused",
		}},
		zap.NewNop(),
	)

	w := webhookRequest(t, h, `{"bookingtime":"next Tuesday at 2pm"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodeResult(t, w)
	assert.Equal(t, models.StatusError, result.Status)
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthHandler)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
