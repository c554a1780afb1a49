package handlers

import (
	"net/http"

	"slotsense/models"
	"slotsense/services/availability"
	"slotsense/services/intelligence"
	"slotsense/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler resolves inbound booking webhooks: normalize the free-text
// time through the language model, then check availability against the
// scheduling API.
type WebhookHandler struct {
	Normalizer   intelligence.NormalizerService
	Availability availability.AvailabilityService
	Logger       *zap.Logger
}

func NewWebhookHandler(normalizer intelligence.NormalizerService, avail availability.AvailabilityService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		Normalizer:   normalizer,
		Availability: avail,
		Logger:       logger,
	}
}

// HandleWebhook is the main booking endpoint. Normalization failures are the
// caller's problem (400); scheduling API failures are reported in-band as a
// status "error" result with a 200, so the upstream agent always gets an
// answer it can relay.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not read request body", err.Error())
		return
	}
	h.Logger.Info("Webhook received", zap.ByteString("body", body))

	booking, err := h.Normalizer.Normalize(c.Request.Context(), body)
	if err != nil {
		h.Logger.Warn("Failed to normalize booking payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.AvailabilityResult{
			Status:  models.StatusError,
			Message: "Could not process booking information",
		})
		return
	}

	result := h.Availability.CheckAvailability(c.Request.Context(), booking)
	h.Logger.Info("Availability resolved",
		zap.String("status", string(result.Status)),
		zap.String("stylist", booking.AssignedStylist))
	c.JSON(http.StatusOK, result)
}
