package weather

import (
	"context"
)

// Endpoint names a provider API endpoint.
type Endpoint string

const EndpointForecast Endpoint = "forecast.json"

// MaxForecastDays is the longest forecast requested from the provider.
const MaxForecastDays = 8

// FetchRequest describes one provider call.
type FetchRequest struct {
	Endpoint Endpoint
	City     string
	Days     int
	Alerts   bool
}

// Fetcher abstracts the weather provider gateway (weatherapi.com).
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (*Document, error)
}
