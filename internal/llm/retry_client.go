package llm

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/user/weatherbot/internal/config"
)

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxAttempts       int           // Total attempts, including the first one
	Multiplier        int           // Exponential backoff multiplier
	MaxWaitPerAttempt time.Duration // Maximum wait time per attempt
	MaxTotalWait      time.Duration // Maximum total wait time
}

// DefaultRetryConfig returns a single-attempt configuration: model failures
// surface to the caller unless retries are configured explicitly.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       1,
		Multiplier:        1,
		MaxWaitPerAttempt: 30 * time.Second,
		MaxTotalWait:      120 * time.Second,
	}
}

// RetryConfigFrom converts the user-facing configuration
func RetryConfigFrom(cfg config.RetryConfig) *RetryConfig {
	rc := DefaultRetryConfig()
	rc.MaxAttempts = cfg.GetMaxAttempts()
	if cfg.Multiplier > 0 {
		rc.Multiplier = cfg.Multiplier
	}
	if cfg.MaxWaitPerAttempt > 0 {
		rc.MaxWaitPerAttempt = time.Duration(cfg.MaxWaitPerAttempt) * time.Second
	}
	if cfg.MaxTotalWait > 0 {
		rc.MaxTotalWait = time.Duration(cfg.MaxTotalWait) * time.Second
	}
	return rc
}

// RetryClient wraps http.Client with retry logic for 429 and 5xx responses
type RetryClient struct {
	client *http.Client
	config *RetryConfig
}

// NewRetryClient creates a new retry client with the default 60s timeout
func NewRetryClient(config *RetryConfig) *RetryClient {
	return NewRetryClientWithTimeout(60*time.Second, config)
}

// NewRetryClientWithTimeout creates a retry client with custom timeout
func NewRetryClientWithTimeout(timeout time.Duration, config *RetryConfig) *RetryClient {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}

	return &RetryClient{
		client: &http.Client{
			Timeout: timeout,
		},
		config: config,
	}
}

// Do executes an HTTP request with retry logic
func (rc *RetryClient) Do(req *http.Request) (*http.Response, error) {
	return rc.DoWithContext(req.Context(), req)
}

// DoWithContext executes an HTTP request with retry logic and context.
// A retryable response on the final attempt is returned as-is so the caller can read its body.
func (rc *RetryClient) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	totalStartTime := time.Now()

	for attempt := 0; attempt < rc.config.MaxAttempts; attempt++ {
		reqClone := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", bodyErr)
			}
			reqClone.Body = body
		}

		resp, err = rc.client.Do(reqClone)

		if err == nil && !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		last := attempt == rc.config.MaxAttempts-1
		if last {
			break
		}

		waitTime := rc.calculateWaitTime(attempt)
		if time.Since(totalStartTime)+waitTime > rc.config.MaxTotalWait {
			break
		}

		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			resp = nil
		}

		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, fmt.Errorf("request failed after %d attempts: %w", rc.config.MaxAttempts, err)
	}

	return resp, nil
}

// isRetryableStatus reports whether a status code is worth another attempt
func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// calculateWaitTime calculates wait time using exponential backoff
func (rc *RetryClient) calculateWaitTime(attempt int) time.Duration {
	// Exponential backoff: 2^attempt * multiplier seconds
	baseWait := time.Duration(math.Pow(2, float64(attempt))) * time.Duration(rc.config.Multiplier) * time.Second

	if baseWait > rc.config.MaxWaitPerAttempt {
		baseWait = rc.config.MaxWaitPerAttempt
	}

	return baseWait
}

// SetTimeout updates the client timeout
func (rc *RetryClient) SetTimeout(timeout time.Duration) {
	rc.client.Timeout = timeout
}

// GetTimeout returns the current client timeout
func (rc *RetryClient) GetTimeout() time.Duration {
	return rc.client.Timeout
}
