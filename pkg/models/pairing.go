package models

import "time"

// PairDeviceRequest registers a device that wants to be paired
type PairDeviceRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

// PairDeviceResponse carries the PIN the device screen should display
type PairDeviceResponse struct {
	DeviceID  string    `json:"device_id"`
	SessionID string    `json:"session_id"`
	Pin       string    `json:"pin"`
	ExpiresAt time.Time `json:"expires_at"`
}
