package pairing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pinpair/pkg/clients/pairing"
)

func TestSubmitPinRequestShape(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		require.Equal(t, http.MethodGet, r.Method)
		require.Zero(t, r.ContentLength, "submit-pin carries no request body")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := pairing.NewClient(server.URL, time.Second)
	err := client.SubmitPin(context.Background(), "0123456789ABCDEF", "1234")
	require.NoError(t, err)

	require.Equal(t, "/submit-pin", gotPath)
	require.Equal(t, "uniqueid=0123456789ABCDEF&pin=1234", gotQuery)
}

func TestSubmitPinTrailingSlashBaseURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := pairing.NewClient(server.URL+"/", time.Second)
	require.NoError(t, client.SubmitPin(context.Background(), "dev", "0000"))
	require.Equal(t, "/submit-pin", gotPath)
}

func TestSubmitPinNonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := pairing.NewClient(server.URL, time.Second)
		err := client.SubmitPin(context.Background(), "dev", "1234")
		require.ErrorIs(t, err, pairing.ErrPairingRejected, "status %d", status)

		server.Close()
	}
}

func TestSubmitPinTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := pairing.NewClient(server.URL, time.Second)
	err := client.SubmitPin(context.Background(), "dev", "1234")
	require.Error(t, err)
	require.NotErrorIs(t, err, pairing.ErrPairingRejected)
}

func TestSubmitPinTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	client := pairing.NewClient(server.URL, 50*time.Millisecond)
	err := client.SubmitPin(context.Background(), "dev", "1234")
	require.Error(t, err)
}

func TestSubmitPinContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	client := pairing.NewClient(server.URL, time.Second)
	err := client.SubmitPin(ctx, "dev", "1234")
	require.ErrorIs(t, err, context.Canceled)
}
