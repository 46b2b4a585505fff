package weather

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/i474232898/weather-app-core/internal/units"
)

// Unknown is substituted for a missing text field.
const Unknown = "Unknown"

// Measure is a numeric reading that may be NaN when the provider omitted it.
// NaN is encoded as JSON null.
type Measure float64

func (m Measure) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Float returns the reading as a float64.
func (m Measure) Float() float64 {
	return float64(m)
}

// WeatherSnapshot is the headline view for a city: condition plus current,
// min and max temperature as numeric strings in the requested unit.
type WeatherSnapshot struct {
	Condition   string `json:"condition"`
	CurrentTemp string `json:"currentTemp"`
	MinTemp     string `json:"minTemp"`
	MaxTemp     string `json:"maxTemp"`
}

// HourlyRecord is one hour of a forecast day, in provider order.
type HourlyRecord struct {
	Time        string  `json:"time"` // provider form "2006-01-02 15:04"
	Temperature string  `json:"temperature"`
	Condition   string  `json:"condition"`
	IconRef     string  `json:"iconRef"`
	TempC       Measure `json:"tempC"`
}

// Clock returns the "HH:MM" part of Time when it carries a date prefix.
func (h HourlyRecord) Clock() string {
	if _, clock, ok := strings.Cut(h.Time, " "); ok {
		return clock
	}
	return h.Time
}

// DailyRecord is one upcoming day; Temperature is the day's maximum.
type DailyRecord struct {
	Date        string  `json:"date"`
	Temperature Measure `json:"temperature"`
	Condition   string  `json:"condition"`
	IconRef     string  `json:"iconRef"`
}

type WeatherStats struct {
	FeelsLike string `json:"feelsLike"`
	Humidity  int    `json:"humidity"`
	WindSpeed string `json:"windSpeed"`
}

// SunMoment holds sunrise and sunset in the provider's "06:42 AM" form.
type SunMoment struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// PlaceholderSnapshot is shown when no snapshot could be produced.
func PlaceholderSnapshot() WeatherSnapshot {
	return WeatherSnapshot{
		Condition:   Unknown,
		CurrentTemp: Unknown,
		MinTemp:     Unknown,
		MaxTemp:     Unknown,
	}
}

// PlaceholderStats is shown when no stats could be produced.
func PlaceholderStats() WeatherStats {
	return WeatherStats{
		FeelsLike: units.NotAvailable,
		WindSpeed: units.NotAvailable,
	}
}
