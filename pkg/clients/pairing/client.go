package pairing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pinpair/pkg/utils"
)

// ErrPairingRejected is returned when the pairing endpoint answers with a
// non-2xx status.
var ErrPairingRejected = errors.New("pairing endpoint rejected the pin")

// Client defines the interface for submitting a PIN to the pairing endpoint
type Client interface {
	SubmitPin(ctx context.Context, deviceID, pin string) error
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new pairing endpoint client
func NewClient(baseURL string, timeout time.Duration) Client {
	return &clientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *clientImpl) SubmitPin(ctx context.Context, deviceID, pin string) error {
	submitURL := fmt.Sprintf("%s/submit-pin?uniqueid=%s&pin=%s",
		c.baseURL, url.QueryEscape(deviceID), url.QueryEscape(pin))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, submitURL, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error submitting pin: %w", err)
	}
	defer resp.Body.Close()

	// The response body is not interpreted, only the status class.
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrPairingRejected, resp.StatusCode)
	}

	utils.Logger.Infof("Submitted pin for device %s", deviceID)
	return nil
}
