package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"pinpair/pkg/utils"
)

var (
	ErrUnknownDevice   = errors.New("unknown device id")
	ErrSessionExpired  = errors.New("pairing session expired")
	ErrPinMismatch     = errors.New("pin does not match")
	ErrTooManyAttempts = errors.New("too many failed pin attempts")
)

// PairingSession tracks one device waiting for its PIN to be typed in.
type PairingSession struct {
	SessionID string
	DeviceID  string
	salt      string
	pinHash   string
	ExpiresAt time.Time
	Paired    bool
	attempts  int
	notify    chan struct{}
}

// RegisteredSession is what a device registration hands back to the caller;
// Pin is the code the device screen shows and is not retained by the service.
type RegisteredSession struct {
	SessionID string
	DeviceID  string
	Pin       string
	ExpiresAt time.Time
}

// PairingSessionService is the server half of the pairing protocol: it hands
// out PINs to registering devices and verifies the PINs users type in.
type PairingSessionService interface {
	RegisterDevice(deviceID string) (*RegisteredSession, error)
	SubmitPin(deviceID, pin string) error
	AwaitPairing(ctx context.Context, deviceID string) error
	Unpair(deviceID string) error
}

type pairingSessionServiceImpl struct {
	sessions    map[string]*PairingSession
	mu          sync.RWMutex
	ttl         time.Duration
	pinLength   int
	maxAttempts int
}

// NewPairingSessionService creates a new session registry
func NewPairingSessionService(ttl time.Duration, pinLength, maxAttempts int) PairingSessionService {
	return &pairingSessionServiceImpl{
		sessions:    make(map[string]*PairingSession),
		ttl:         ttl,
		pinLength:   pinLength,
		maxAttempts: maxAttempts,
	}
}

// RegisterDevice creates a fresh session for the device, replacing any
// session already registered under the same id.
func (s *pairingSessionServiceImpl) RegisterDevice(deviceID string) (*RegisteredSession, error) {
	pin := utils.RandomNumericString(s.pinLength)
	salt := utils.RandomString(16)

	session := &PairingSession{
		SessionID: uuid.New().String(),
		DeviceID:  deviceID,
		salt:      salt,
		pinHash:   utils.HashPin(salt, pin),
		ExpiresAt: time.Now().Add(s.ttl),
		notify:    make(chan struct{}, 1),
	}

	s.mu.Lock()
	s.sessions[deviceID] = session
	s.mu.Unlock()

	utils.Logger.Infof("Registered pairing session %s for device %s", session.SessionID, deviceID)

	// Drop the session once it expires, unless it was already replaced.
	go func(sessionID string) {
		time.Sleep(s.ttl)
		s.mu.Lock()
		if current, ok := s.sessions[deviceID]; ok && current.SessionID == sessionID {
			delete(s.sessions, deviceID)
		}
		s.mu.Unlock()
	}(session.SessionID)

	return &RegisteredSession{
		SessionID: session.SessionID,
		DeviceID:  deviceID,
		Pin:       pin,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// SubmitPin checks a user-typed PIN against the device's session and wakes
// the waiter on a match. A session is destroyed after too many bad attempts.
func (s *pairingSessionServiceImpl) SubmitPin(deviceID, pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[deviceID]
	if !exists {
		return ErrUnknownDevice
	}

	if time.Now().After(session.ExpiresAt) {
		delete(s.sessions, deviceID)
		return ErrSessionExpired
	}

	if utils.HashPin(session.salt, pin) != session.pinHash {
		session.attempts++
		if session.attempts >= s.maxAttempts {
			delete(s.sessions, deviceID)
			utils.Logger.Warnf("Device %s exceeded pin attempts, session destroyed", deviceID)
			return ErrTooManyAttempts
		}
		return ErrPinMismatch
	}

	session.Paired = true
	select {
	case session.notify <- struct{}{}:
	default:
	}

	utils.Logger.Infof("Device %s paired", deviceID)
	return nil
}

// AwaitPairing blocks until the device's PIN has been entered, the session
// disappears, or the context ends.
func (s *pairingSessionServiceImpl) AwaitPairing(ctx context.Context, deviceID string) error {
	s.mu.RLock()
	session, exists := s.sessions[deviceID]
	paired := exists && session.Paired
	s.mu.RUnlock()

	if !exists {
		return ErrUnknownDevice
	}
	if paired {
		return nil
	}

	select {
	case <-session.notify:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unpair removes the device's session from the registry.
func (s *pairingSessionServiceImpl) Unpair(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[deviceID]; !exists {
		return ErrUnknownDevice
	}
	delete(s.sessions, deviceID)

	utils.Logger.Infof("Unpaired device %s", deviceID)
	return nil
}
