package weather

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/user/weatherbot/internal/config"
	"github.com/user/weatherbot/internal/llmtypes"
	"github.com/user/weatherbot/internal/logging"
)

// DefaultBaseURL is the OpenWeatherMap current-conditions endpoint
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// maxBodySize bounds how much of a provider response is read
const maxBodySize = 1 << 20

// Client performs current-conditions lookups against OpenWeatherMap.
// Each Fetch issues exactly one request; there is no retry and no caching.
type Client struct {
	apiKey     string
	baseURL    string
	units      string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a weather client from configuration
func NewClient(cfg config.WeatherConfig, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		units:   cfg.GetUnits(),
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		logger: logger.Named("weather"),
	}
}

// Fetch looks up current conditions for location. Failures never escape as
// errors: they come back as a failed ToolResult with a readable description.
func (c *Client) Fetch(ctx context.Context, location string) llmtypes.ToolResult {
	reqURL := c.buildURL(location)
	start := time.Now()

	c.logger.Info("Calling weather API",
		logging.String("location", location),
		logging.String("url", logging.RedactURLQuery(reqURL, "appid")),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return c.fail(location, "could not build weather request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(location, describeTransportError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return c.fail(location, "failed to read weather response: "+describeCause(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(location, describeHTTPError(resp.StatusCode, body))
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return c.fail(location, fmt.Sprintf("weather service returned an unreadable response: %v", err))
	}

	conditions := raw.normalize(c.units)

	c.logger.Info("Weather lookup succeeded",
		logging.String("location", location),
		logging.String("resolved", conditions.Location),
		logging.Float64("temperature", conditions.Temperature),
		logging.Duration("duration", time.Since(start)),
	)

	return llmtypes.NewToolSuccess(conditions)
}

func (c *Client) buildURL(location string) string {
	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)

	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + params.Encode()
}

func (c *Client) fail(location, description string) llmtypes.ToolResult {
	c.logger.Warn("Weather lookup failed",
		logging.String("location", location),
		logging.String("reason", description),
	)
	return llmtypes.NewToolError(description)
}

// describeTransportError reports a failed round-trip without the request URL,
// which carries the API key.
func describeTransportError(err error) string {
	if stderrors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return "weather service unreachable (timeout)"
	}
	if stderrors.Is(err, context.Canceled) {
		return "weather lookup cancelled"
	}
	return "weather service unreachable: " + describeCause(err)
}

// describeCause strips the *url.Error wrapper and redacts any key left in the text
func describeCause(err error) string {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return logging.RedactURLQuery(err.Error(), "appid")
}

// describeHTTPError prefers the provider's own message ({"cod":"404","message":"city not found"})
func describeHTTPError(status int, body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Sprintf("weather service returned %d: %s", status, apiErr.Message)
	}
	return fmt.Sprintf("weather service returned %d: %s", status, http.StatusText(status))
}
