package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-app-core/internal/store"
	"github.com/i474232898/weather-app-core/internal/weather"
)

const fixture = `{
  "current": {"temp_c": 30, "feelslike_c": 28, "wind_kph": 100, "condition": {"text": "Sunny"}},
  "forecast": {"forecastday": [
    {"date": "2025-06-01",
     "day": {"maxtemp_c": 35, "mintemp_c": 20, "avgtemp_c": 27, "maxwind_kph": 30, "avghumidity": 40, "condition": {"text": "Sunny", "icon": "113.png"}},
     "astro": {"sunrise": "05:44 AM", "sunset": "09:31 PM"},
     "hour": [
       {"time": "2025-06-01 12:00", "temp_c": 34, "condition": {"text": "Sunny", "icon": "113.png"}},
       {"time": "2025-06-01 13:00", "temp_c": 36, "condition": {"text": "Sunny", "icon": "113.png"}}
     ]},
    {"date": "2025-06-02",
     "day": {"maxtemp_c": 25, "mintemp_c": 15, "avgtemp_c": 20, "maxwind_kph": 20, "avghumidity": 80, "condition": {"text": "Light rain", "icon": "296.png"}},
     "astro": {"sunrise": "05:43 AM", "sunset": "09:32 PM"},
     "hour": []}
  ]}
}`

type fakeFetcher struct {
	doc *weather.Document
	err error
}

func (f *fakeFetcher) Fetch(ctx context.Context, req weather.FetchRequest) (*weather.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func newTestApp(t *testing.T, fetcher weather.Fetcher) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	profiles := store.NewMemoryStore(
		store.Profile{ID: "alice", MainCity: "Madrid", TempUnit: "Fahrenheit", WindSpeedUnit: "mph"},
	)
	RegisterRoutes(app, weather.NewService(fetcher), profiles)
	return app
}

func fixtureFetcher(t *testing.T) *fakeFetcher {
	t.Helper()
	var doc weather.Document
	if err := json.Unmarshal([]byte(fixture), &doc); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &fakeFetcher{doc: &doc}
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	body := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response of %s: %v", target, err)
	}
	return resp.StatusCode, body
}

func field(t *testing.T, body map[string]interface{}, obj, key string) interface{} {
	t.Helper()
	m, ok := body[obj].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no %q object: %v", obj, body)
	}
	return m[key]
}

func TestCurrent(t *testing.T) {
	app := newTestApp(t, fixtureFetcher(t))

	tests := []struct {
		target  string
		wantCur string
		wantMax string
	}{
		{"/api/v1/weather/current?city=Madrid", "30", "35"},
		{"/api/v1/weather/current?city=Madrid&tempUnit=Fahrenheit", "86", "95"},
		{"/api/v1/weather/current?city=Madrid&date=2025-06-02", "20", "25"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			status, body := get(t, app, tt.target)
			if status != http.StatusOK {
				t.Fatalf("status = %d, body %v", status, body)
			}
			if got := field(t, body, "snapshot", "currentTemp"); got != tt.wantCur {
				t.Errorf("currentTemp = %v, want %v", got, tt.wantCur)
			}
			if got := field(t, body, "snapshot", "maxTemp"); got != tt.wantMax {
				t.Errorf("maxTemp = %v, want %v", got, tt.wantMax)
			}
		})
	}
}

func TestStatsUsesProfileUnits(t *testing.T) {
	app := newTestApp(t, fixtureFetcher(t))

	status, body := get(t, app, "/api/v1/weather/stats?user=alice")
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["city"] != "Madrid" {
		t.Errorf("city = %v, want Madrid from profile", body["city"])
	}
	if got := field(t, body, "stats", "feelsLike"); got != "82°F" {
		t.Errorf("feelsLike = %v, want 82°F", got)
	}
	if got := field(t, body, "stats", "windSpeed"); got != "62 mph" {
		t.Errorf("windSpeed = %v, want 62 mph", got)
	}
	if got := field(t, body, "stats", "humidity"); got != float64(40) {
		t.Errorf("humidity = %v, want 40", got)
	}

	// Query units win over the profile.
	_, body = get(t, app, "/api/v1/weather/stats?user=alice&windUnit=km/h&tempUnit=Celsius")
	if got := field(t, body, "stats", "windSpeed"); got != "100 kmh" {
		t.Errorf("windSpeed = %v, want 100 kmh", got)
	}
	if got := field(t, body, "stats", "feelsLike"); got != "28°C" {
		t.Errorf("feelsLike = %v, want 28°C", got)
	}
}

func TestDailyHourlyAstroAlerts(t *testing.T) {
	app := newTestApp(t, fixtureFetcher(t))

	_, body := get(t, app, "/api/v1/weather/daily?city=Madrid")
	days, ok := body["days"].([]interface{})
	if !ok || len(days) != 1 {
		t.Fatalf("expected one upcoming day, got %v", body["days"])
	}
	if day := days[0].(map[string]interface{}); day["date"] != "2025-06-02" || day["temperature"] != float64(25) {
		t.Errorf("unexpected day %v", day)
	}

	_, body = get(t, app, "/api/v1/weather/hourly?city=Madrid&date=2025-06-02")
	if hours, ok := body["hours"].([]interface{}); !ok || len(hours) != 0 {
		t.Errorf("expected empty hours, got %v", body["hours"])
	}

	_, body = get(t, app, "/api/v1/weather/astro?city=Madrid&date=2025-06-02")
	if got := field(t, body, "astro", "sunset"); got != "09:32 PM" {
		t.Errorf("sunset = %v", got)
	}

	_, body = get(t, app, "/api/v1/weather/alerts?city=Madrid")
	alerts, ok := body["alerts"].([]interface{})
	if !ok || len(alerts) != 1 || alerts[0] != "Extreme heat expected at 13:00" {
		t.Errorf("alerts = %v", body["alerts"])
	}
}

func TestRequestErrors(t *testing.T) {
	app := newTestApp(t, fixtureFetcher(t))

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"missing city", "/api/v1/weather/current", http.StatusBadRequest},
		{"bad date", "/api/v1/weather/stats?city=Madrid&date=2025-13-01", http.StatusBadRequest},
		{"bad temp unit", "/api/v1/weather/current?city=Madrid&tempUnit=Kelvin", http.StatusBadRequest},
		{"bad wind unit", "/api/v1/weather/stats?city=Madrid&windUnit=knots", http.StatusBadRequest},
		{"unknown user", "/api/v1/weather/current?user=ghost", http.StatusNotFound},
		{"date outside forecast", "/api/v1/weather/stats?city=Madrid&date=2030-01-01", http.StatusNotFound},
		{"astro date outside forecast", "/api/v1/weather/astro?city=Madrid&date=2030-01-01", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, app, tt.target)
			if status != tt.want {
				t.Errorf("status = %d, want %d (body %v)", status, tt.want, body)
			}
			if body["error"] != true {
				t.Errorf("expected error body, got %v", body)
			}
		})
	}
}

func TestUpstreamFailureReturnsPlaceholder(t *testing.T) {
	app := newTestApp(t, &fakeFetcher{err: &weather.HTTPStatusError{Code: 503}})

	status, body := get(t, app, "/api/v1/weather/current?city=Madrid")
	if status != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", status, http.StatusBadGateway)
	}
	if got := field(t, body, "placeholder", "condition"); got != weather.Unknown {
		t.Errorf("placeholder condition = %v", got)
	}

	status, body = get(t, app, "/api/v1/weather/stats?city=Madrid")
	if status != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", status, http.StatusBadGateway)
	}
	if got := field(t, body, "placeholder", "feelsLike"); got != "N/A" {
		t.Errorf("placeholder feelsLike = %v", got)
	}
}

func TestMalformedResponseIsBadGateway(t *testing.T) {
	app := newTestApp(t, &fakeFetcher{doc: &weather.Document{}})

	status, _ := get(t, app, "/api/v1/weather/daily?city=Madrid")
	if status != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", status, http.StatusBadGateway)
	}
}
