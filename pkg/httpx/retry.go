// Package httpx wraps outbound HTTP calls with bounded retries.
package httpx

import (
	"aura_edu_backend/pkg/logger"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Policy bounds the retry loop. Zero values fall back to DefaultPolicy.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultPolicy = Policy{
	MaxRetries: 3,
	BaseDelay:  250 * time.Millisecond,
	MaxDelay:   2 * time.Second,
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// DoWithRetry sends the request built by makeReq, retrying on transport
// errors, 429 and 5xx responses with jittered exponential backoff. The caller
// owns the returned body.
func DoWithRetry(ctx context.Context, client *http.Client, policy Policy, makeReq func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	policy = policy.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		req, err := makeReq(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("execute request: %w", err)
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			lastErr = &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
			if !IsRetryableStatus(resp.StatusCode) {
				return nil, lastErr
			}
		}

		if attempt == policy.MaxRetries {
			break
		}
		logger.Log.Debug("Retrying upstream request", zap.Int("attempt", attempt+1), zap.Error(lastErr))
		if err := sleepWithBackoff(ctx, policy, attempt); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func IsRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func (p Policy) withDefaults() Policy {
	if p.MaxRetries <= 0 {
		p.MaxRetries = DefaultPolicy.MaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultPolicy.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultPolicy.MaxDelay
	}
	return p
}

func sleepWithBackoff(ctx context.Context, p Policy, attempt int) error {
	delay := min(p.BaseDelay*time.Duration(1<<attempt), p.MaxDelay)
	delay = min(delay+time.Duration(rand.Int63n(int64(delay/2)+1)), p.MaxDelay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
