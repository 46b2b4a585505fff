package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-app-core/internal/weather"
)

// DefaultWeatherAPIBaseURL is the weatherapi.com v1 root.
const DefaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

// WeatherAPIProvider implements weather.Fetcher for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Fetcher = (*WeatherAPIProvider)(nil)

// NewWeatherAPIProvider creates the gateway. An empty baseURL selects
// DefaultWeatherAPIBaseURL. The client's Timeout bounds every call.
func NewWeatherAPIProvider(client *http.Client, apiKey, baseURL string) *WeatherAPIProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIBaseURL
	}
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// Fetch performs a single request and decodes the body into a Document. It
// does not interpret weather semantics; missing keys are left for the parser.
func (p *WeatherAPIProvider) Fetch(ctx context.Context, req weather.FetchRequest) (*weather.Document, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}

	u, err := p.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := doRequest(p.client, p.circuit, httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &weather.TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, weather.ErrEmptyBody
	}

	var doc weather.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrMalformedResponse, err)
	}
	return &doc, nil
}

func (p *WeatherAPIProvider) buildURL(req weather.FetchRequest) (string, error) {
	if req.Endpoint != weather.EndpointForecast {
		return "", fmt.Errorf("%w: %q", weather.ErrUnsupportedEndpoint, req.Endpoint)
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		return "", weather.ErrEmptyCity
	}
	if req.Days < 1 || req.Days > weather.MaxForecastDays {
		return "", fmt.Errorf("%w: got %d", weather.ErrInvalidDays, req.Days)
	}

	alerts := "no"
	if req.Alerts {
		alerts = "yes"
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", city)
	values.Set("days", strconv.Itoa(req.Days))
	values.Set("aqi", "no")
	values.Set("alerts", alerts)

	return fmt.Sprintf("%s/%s?%s", p.baseURL, req.Endpoint, values.Encode()), nil
}
