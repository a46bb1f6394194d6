package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gottomy2/departures/config"
	"github.com/gottomy2/departures/internal/observability"
)

// Provider fetches the current temperature for a city.
type Provider interface {
	FetchTemperature(ctx context.Context, city string) (float64, error)
}

// Client talks to the OpenWeatherMap current-weather endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type apiResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

func NewClient(cfg config.WeatherConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchTemperature(ctx context.Context, city string) (float64, error) {
	reqURL := fmt.Sprintf("%s/weather?q=%s&units=metric&appid=%s", c.baseURL, url.QueryEscape(city), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("fetch weather for %s: %w", city, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("weather API returned status %d for %s", resp.StatusCode, city)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("decode weather response for %s: %w", city, err)
	}

	observability.WeatherAPICallsTotal.WithLabelValues("success").Inc()
	return apiResp.Main.Temp, nil
}

var _ Provider = (*Client)(nil)
