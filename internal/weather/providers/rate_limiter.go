package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-app-core/internal/weather"
)

// RateLimited wraps a Fetcher with a token-bucket limiter so bursts of screen
// requests stay inside the provider's quota.
type RateLimited struct {
	fetcher weather.Fetcher
	limiter *rate.Limiter
}

var _ weather.Fetcher = (*RateLimited)(nil)

// NewRateLimited allows rps requests per second with the given burst. A burst
// below 1 is raised to 1.
func NewRateLimited(fetcher weather.Fetcher, rps float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch waits for a token; a cancelled wait is reported as a transport failure.
func (r *RateLimited) Fetch(ctx context.Context, req weather.FetchRequest) (*weather.Document, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &weather.TransportError{Err: fmt.Errorf("rate limit wait canceled: %w", err)}
	}
	return r.fetcher.Fetch(ctx, req)
}
