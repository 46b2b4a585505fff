package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-app-core/internal/log"
	"github.com/i474232898/weather-app-core/internal/weather"
)

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// newCircuitBreaker trips after consecutive transport or 5xx failures. It never
// retries; an open breaker fails calls fast until Timeout elapses.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "provider", name, "from", from.String(), "to", to.String())
		},
	})
}

// doRequest executes req once through the circuit breaker and classifies the
// outcome. On success the caller owns resp.Body.
func doRequest(client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, &weather.TransportError{Err: execErr}
		}
		// Only server errors count against the breaker; 4xx is the caller's problem.
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, &weather.HTTPStatusError{Code: resp.StatusCode}
		}
		return resp, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &weather.TransportError{Err: fmt.Errorf("%w: %v", errCircuitOpen, err)}
	}
	if err != nil {
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &weather.HTTPStatusError{Code: resp.StatusCode}
	}
	return resp, nil
}
