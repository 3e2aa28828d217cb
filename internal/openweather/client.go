// Package openweather is the HTTP client for the OpenWeather geocoding,
// current-conditions, and 5-day forecast endpoints. It only speaks the
// provider's wire shapes; normalization into domain records happens in
// the location and weather packages.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

const defaultBaseURL = "https://api.openweathermap.org"

// GeoPlace is one candidate from the forward or reverse geocoding endpoints.
type GeoPlace struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentPayload is the /data/2.5/weather response subset we consume.
type CurrentPayload struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Visibility float64 `json:"visibility"` // meters
}

// ForecastSample is one raw 3-hour sample from /data/2.5/forecast.
type ForecastSample struct {
	Dt   int64 `json:"dt"` // unix seconds
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// ForecastPayload is the /data/2.5/forecast response subset we consume.
type ForecastPayload struct {
	List []ForecastSample `json:"list"`
}

// Client calls the OpenWeather API with retries, exponential backoff,
// and a circuit breaker shared across all endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	backoff    BackoffConfig
	circuit    *gobreaker.CircuitBreaker
}

// NewClient creates a Client against the production OpenWeather API.
func NewClient(httpClient *http.Client, apiKey string) *Client {
	return NewClientWithBaseURL(httpClient, apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates a Client against an alternate base URL.
// Used by tests to point at a local stub server.
func NewClientWithBaseURL(httpClient *http.Client, apiKey, baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// DirectGeocode resolves a free-text query into up to limit candidates,
// in provider rank order.
func (c *Client) DirectGeocode(ctx context.Context, query string, limit int) ([]GeoPlace, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))
	values.Set("appid", c.apiKey)

	var places []GeoPlace
	if err := c.getJSON(ctx, "/geo/1.0/direct", values, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// ReverseGeocode resolves coordinates into up to limit named candidates.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64, limit int) ([]GeoPlace, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("limit", strconv.Itoa(limit))
	values.Set("appid", c.apiKey)

	var places []GeoPlace
	if err := c.getJSON(ctx, "/geo/1.0/reverse", values, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// CurrentWeather fetches present conditions at the given coordinates,
// in metric units.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (CurrentPayload, error) {
	var payload CurrentPayload
	if c.apiKey == "" {
		return payload, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	if err := c.getJSON(ctx, "/data/2.5/weather", values, &payload); err != nil {
		return CurrentPayload{}, err
	}
	return payload, nil
}

// Forecast fetches the 5-day feed of 3-hour samples at the given
// coordinates, in metric units.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (ForecastPayload, error) {
	var payload ForecastPayload
	if c.apiKey == "" {
		return payload, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	if err := c.getJSON(ctx, "/data/2.5/forecast", values, &payload); err != nil {
		return ForecastPayload{}, err
	}
	return payload, nil
}

func (c *Client) getJSON(ctx context.Context, path string, values url.Values, out any) error {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())

	resp, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
