package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/user/weatherbot/internal/config"
	"github.com/user/weatherbot/internal/logging"
)

const parisPayload = `{
  "coord": {"lon": 2.3488, "lat": 48.8534},
  "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
  "main": {"temp": 18.4, "feels_like": 17.9, "temp_min": 16.1, "temp_max": 20.2, "pressure": 1019, "humidity": 62},
  "wind": {"speed": 3.6, "deg": 250},
  "sys": {"country": "FR"},
  "name": "Paris",
  "cod": 200
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(config.WeatherConfig{
		APIKey:  "secret-weather-key",
		BaseURL: server.URL,
	}, nil)
	return client, &calls
}

func TestClient_Fetch_Success(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "Paris" {
			t.Errorf("Expected q=Paris, got %q", q.Get("q"))
		}
		if q.Get("appid") != "secret-weather-key" {
			t.Errorf("Expected appid to carry the key, got %q", q.Get("appid"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("Expected units=metric, got %q", q.Get("units"))
		}
		fmt.Fprint(w, parisPayload)
	})

	result := client.Fetch(context.Background(), "Paris")

	if !result.Success {
		t.Fatalf("Expected success, got error %q", result.Error)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Errorf("Expected exactly 1 request, got %d", atomic.LoadInt32(calls))
	}

	cond, ok := result.Payload.(Conditions)
	if !ok {
		t.Fatalf("Expected Conditions payload, got %T", result.Payload)
	}
	if cond.Location != "Paris" || cond.Country != "FR" {
		t.Errorf("Unexpected location: %s, %s", cond.Location, cond.Country)
	}
	if cond.Description != "clear sky" {
		t.Errorf("Expected 'clear sky', got %q", cond.Description)
	}
	if cond.Temperature != 18.4 || cond.FeelsLike != 17.9 {
		t.Errorf("Unexpected temperatures: %+v", cond)
	}
	if cond.Humidity != 62 || cond.Pressure != 1019 || cond.WindSpeed != 3.6 {
		t.Errorf("Unexpected readings: %+v", cond)
	}
	if cond.TemperatureUnit != "°C" || cond.WindSpeedUnit != "m/s" {
		t.Errorf("Unexpected units: %s %s", cond.TemperatureUnit, cond.WindSpeedUnit)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(result.Content()), &decoded); err != nil {
		t.Fatalf("Content is not valid JSON: %v", err)
	}
	if decoded["location"] != "Paris" {
		t.Errorf("Expected serialized location Paris, got %v", decoded["location"])
	}
}

func TestClient_Fetch_CityNotFound(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
	})

	result := client.Fetch(context.Background(), "Atlantis")

	if result.Success {
		t.Fatal("Expected failure for Atlantis")
	}
	if !strings.Contains(result.Error, "city not found") {
		t.Errorf("Expected provider message in error, got %q", result.Error)
	}
	if !strings.Contains(result.Error, "404") {
		t.Errorf("Expected status in error, got %q", result.Error)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Errorf("Expected exactly 1 request (no retry), got %d", atomic.LoadInt32(calls))
	}
}

func TestClient_Fetch_ErrorWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	result := client.Fetch(context.Background(), "Paris")

	if result.Success {
		t.Fatal("Expected failure")
	}
	if !strings.Contains(result.Error, "Bad Gateway") {
		t.Errorf("Expected status text in error, got %q", result.Error)
	}
}

func TestClient_Fetch_MalformedJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "Paris", "main": `)
	})

	result := client.Fetch(context.Background(), "Paris")

	if result.Success {
		t.Fatal("Expected failure for malformed JSON")
	}
	if !strings.Contains(result.Error, "unreadable") {
		t.Errorf("Expected unreadable-response error, got %q", result.Error)
	}
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(config.WeatherConfig{APIKey: "k", BaseURL: baseURL}, nil)
	result := client.Fetch(context.Background(), "Paris")

	if result.Success {
		t.Fatal("Expected failure for unreachable service")
	}
	if !strings.Contains(result.Error, "unreachable") {
		t.Errorf("Expected unreachable error, got %q", result.Error)
	}
}

func TestClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(config.WeatherConfig{APIKey: "k", BaseURL: server.URL}, nil)
	client.httpClient.Timeout = 50 * time.Millisecond

	result := client.Fetch(context.Background(), "Paris")
	if result.Success {
		t.Fatal("Expected failure on timeout")
	}
	if result.Error != "weather service unreachable (timeout)" {
		t.Errorf("Expected timeout description, got %q", result.Error)
	}
}

func TestClient_Fetch_ImperialUnits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("units") != "imperial" {
			t.Errorf("Expected units=imperial, got %q", r.URL.Query().Get("units"))
		}
		fmt.Fprint(w, parisPayload)
	}))
	defer server.Close()

	client := NewClient(config.WeatherConfig{APIKey: "k", BaseURL: server.URL, Units: "imperial"}, nil)
	result := client.Fetch(context.Background(), "Paris")

	cond := result.Payload.(Conditions)
	if cond.TemperatureUnit != "°F" || cond.WindSpeedUnit != "mph" {
		t.Errorf("Unexpected units: %s %s", cond.TemperatureUnit, cond.WindSpeedUnit)
	}
}

func TestClient_Fetch_DoesNotLogAPIKey(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, parisPayload)
	}))
	defer server.Close()

	client := NewClient(config.WeatherConfig{
		APIKey:  "secret-weather-key",
		BaseURL: server.URL,
	}, logging.NewFromZap(zap.New(core)))

	client.Fetch(context.Background(), "Paris")

	entries := logs.FilterMessage("Calling weather API").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 'Calling weather API' entry, got %d", len(entries))
	}
	for _, entry := range logs.All() {
		for _, field := range entry.Context {
			if strings.Contains(field.String, "secret-weather-key") {
				t.Errorf("API key leaked in log field %s", field.Key)
			}
		}
	}
}

func TestClient_Fetch_UnreachableDoesNotLeakAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	core, logs := observer.New(zap.DebugLevel)
	client := NewClient(config.WeatherConfig{
		APIKey:  "secret-weather-key",
		BaseURL: baseURL,
	}, logging.NewFromZap(zap.New(core)))

	result := client.Fetch(context.Background(), "Paris")

	if result.Success {
		t.Fatal("Expected failure for unreachable service")
	}
	if strings.Contains(result.Error, "secret-weather-key") {
		t.Errorf("API key leaked in result error: %q", result.Error)
	}
	if strings.Contains(result.Error, baseURL) {
		t.Errorf("Expected request URL to be omitted, got %q", result.Error)
	}
	if len(logs.FilterMessage("Weather lookup failed").All()) != 1 {
		t.Error("Expected one 'Weather lookup failed' entry")
	}
	for _, entry := range logs.All() {
		if strings.Contains(entry.Message, "secret-weather-key") {
			t.Errorf("API key leaked in log message %q", entry.Message)
		}
		for _, field := range entry.Context {
			if strings.Contains(field.String, "secret-weather-key") {
				t.Errorf("API key leaked in log field %s of %q", field.Key, entry.Message)
			}
		}
	}
}

func TestDescribeTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "deadline",
			err:  &url.Error{Op: "Get", URL: "http://x?appid=secret", Err: context.DeadlineExceeded},
			want: "weather service unreachable (timeout)",
		},
		{
			name: "cancelled",
			err:  &url.Error{Op: "Get", URL: "http://x?appid=secret", Err: context.Canceled},
			want: "weather lookup cancelled",
		},
		{
			name: "dial failure",
			err:  &url.Error{Op: "Get", URL: "http://x?appid=secret", Err: fmt.Errorf("connection refused")},
			want: "weather service unreachable: connection refused",
		},
		{
			name: "bare error with key",
			err:  fmt.Errorf("bad url appid=secret"),
			want: "weather service unreachable: bad url appid=****cret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeTransportError(tt.err); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(config.WeatherConfig{}, nil)

	if client.baseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL, got %s", client.baseURL)
	}
	if client.units != "metric" {
		t.Errorf("Expected metric units, got %s", client.units)
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %v", client.httpClient.Timeout)
	}
}
