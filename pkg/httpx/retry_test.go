package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = Policy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func getter(url string) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

func TestDoWithRetryRecoversFromServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := DoWithRetry(context.Background(), srv.Client(), fastPolicy, getter(srv.URL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoWithRetryStopsOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := DoWithRetry(context.Background(), srv.Client(), fastPolicy, getter(srv.URL))
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
	assert.Equal(t, "bad key", statusErr.Body)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoWithRetryGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := DoWithRetry(context.Background(), srv.Client(), fastPolicy, getter(srv.URL))
	require.Error(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestIsRetryableStatus(t *testing.T) {
	assert.True(t, IsRetryableStatus(http.StatusTooManyRequests))
	assert.True(t, IsRetryableStatus(http.StatusBadGateway))
	assert.False(t, IsRetryableStatus(http.StatusBadRequest))
	assert.False(t, IsRetryableStatus(http.StatusNotFound))
}
