package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Day holds the provider-sourced fields of a daily forecast.
type Day struct {
	MaxTemperature float64
	MinTemperature float64
	Humidity       float64
	ChanceOfRain   float64
}

// Provider fetches a daily forecast for a location from an external
// weather API.  Implementations must bound each call with a timeout; a
// timed-out or failed call is surfaced to the cache as an error, never
// as an empty forecast.
type Provider interface {
	Fetch(ctx context.Context, location string, date time.Time) (Day, error)
}

// APIClient is the production Provider backed by the WeatherAPI
// forecast endpoint (forecast.json).  The wire format is an adapter
// detail: only the four daily fields the cache stores are decoded.
type APIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAPIClient constructs an APIClient.  timeout bounds every request
// including connection setup and body read.
func NewAPIClient(baseURL, apiKey string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// forecastResponse mirrors the subset of the WeatherAPI forecast.json
// payload that the cache consumes.
type forecastResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Day struct {
				MaxTempC     float64 `json:"maxtemp_c"`
				MinTempC     float64 `json:"mintemp_c"`
				AvgHumidity  float64 `json:"avghumidity"`
				ChanceOfRain float64 `json:"daily_chance_of_rain"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Fetch calls the forecast endpoint for one location and day.  A
// non-200 response or a payload without forecast days is an error.
func (c *APIClient) Fetch(ctx context.Context, location string, date time.Time) (Day, error) {
	u := fmt.Sprintf("%s/forecast.json?key=%s&q=%s&dt=%s&aqi=no&alerts=no",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(location), date.UTC().Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Day{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Day{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Day{}, fmt.Errorf("weather api: unexpected status %d", resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Day{}, fmt.Errorf("weather api: decode response: %w", err)
	}
	if len(body.Forecast.ForecastDay) == 0 {
		return Day{}, errors.New("weather api: empty forecast in response")
	}

	d := body.Forecast.ForecastDay[0].Day
	return Day{
		MaxTemperature: d.MaxTempC,
		MinTemperature: d.MinTempC,
		Humidity:       d.AvgHumidity,
		ChanceOfRain:   d.ChanceOfRain,
	}, nil
}
