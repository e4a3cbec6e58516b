package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pinpair/pkg/models"
	"pinpair/pkg/services"
	"pinpair/pkg/utils"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	sessionService services.PairingSessionService
}

// NewHandlers creates a new Handlers instance
func NewHandlers(sessionService services.PairingSessionService) *Handlers {
	return &Handlers{
		sessionService: sessionService,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleSubmitPin verifies the PIN the user typed for a device. The PIN entry
// form only looks at the status class, so failures are plain 400s.
func (h *Handlers) HandleSubmitPin(c *gin.Context) {
	uniqueID := c.Query("uniqueid")
	if uniqueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected 'uniqueid' in pin request"})
		return
	}

	pin := c.Query("pin")
	if pin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected 'pin' in pin request"})
		return
	}

	if err := h.sessionService.SubmitPin(uniqueID, pin); err != nil {
		utils.Logger.Warnf("Pin submission for device %s rejected: %v", uniqueID, err)

		switch {
		case errors.Is(err, services.ErrUnknownDevice):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown unique id"})
		case errors.Is(err, services.ErrSessionExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Pairing session expired"})
		case errors.Is(err, services.ErrTooManyAttempts):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Too many failed attempts"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect pin"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Successfully received pin for unique id " + uniqueID,
	})
}

// HandlePairDevice registers a device and returns the PIN it should display
func (h *Handlers) HandlePairDevice(c *gin.Context) {
	var req models.PairDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.sessionService.RegisterDevice(req.DeviceID)
	if err != nil {
		utils.Logger.Errorf("Error registering device %s: %v", req.DeviceID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not register device"})
		return
	}

	c.JSON(http.StatusCreated, models.PairDeviceResponse{
		DeviceID:  session.DeviceID,
		SessionID: session.SessionID,
		Pin:       session.Pin,
		ExpiresAt: session.ExpiresAt,
	})
}

// HandleUnpair removes a device's pairing session
func (h *Handlers) HandleUnpair(c *gin.Context) {
	uniqueID := c.Query("uniqueid")
	if uniqueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected 'uniqueid' in unpair request"})
		return
	}

	if err := h.sessionService.Unpair(uniqueID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown unique id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Successfully unpaired",
	})
}
