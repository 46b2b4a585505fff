package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBody is returned when the provider answered 2xx without a body.
	ErrEmptyBody = errors.New("empty response body")

	// ErrMalformedResponse is returned when the payload lacks "forecast" or
	// "forecast.forecastday", or is not a JSON object at all.
	ErrMalformedResponse = errors.New("malformed weather response")

	// ErrNotFoundForDate is returned when a well-formed response has no
	// forecast day for the requested date. It means "no data", not failure.
	ErrNotFoundForDate = errors.New("no forecast data for requested date")

	ErrEmptyCity           = errors.New("city must not be empty")
	ErrInvalidDays         = errors.New("days must be between 1 and 8")
	ErrUnsupportedEndpoint = errors.New("unsupported endpoint")
)

// TransportError wraps failures where the request never produced a response:
// DNS, connection, timeout, cancellation or an open circuit breaker.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError reports a non-2xx provider status. The body is not consulted.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// IsUpstream reports whether err came from fetching or decoding the provider
// response, as opposed to a date miss or bad caller input.
func IsUpstream(err error) bool {
	var te *TransportError
	var he *HTTPStatusError
	return errors.As(err, &te) || errors.As(err, &he) ||
		errors.Is(err, ErrEmptyBody) || errors.Is(err, ErrMalformedResponse)
}
