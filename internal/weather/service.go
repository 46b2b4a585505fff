package weather

import (
	"context"
	"fmt"
	"math"

	"github.com/i474232898/weather-app-core/internal/log"
	"github.com/i474232898/weather-app-core/internal/units"
)

// Service runs the fetch, parse and convert pipeline for one city per call.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	fetcher Fetcher
}

// NewService creates a new Service.
func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

func (s *Service) fetch(ctx context.Context, city string, days int, alerts bool) (*Document, error) {
	log.Debugw("fetching forecast", "city", city, "days", days)

	doc, err := s.fetcher.Fetch(ctx, FetchRequest{
		Endpoint: EndpointForecast,
		City:     city,
		Days:     days,
		Alerts:   alerts,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch forecast for %s: %w", city, err)
	}
	return doc, nil
}

// Current returns today's snapshot for city.
func (s *Service) Current(ctx context.Context, city string, unit units.TempUnit) (WeatherSnapshot, error) {
	doc, err := s.fetch(ctx, city, 1, true)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	return ExtractCurrent(doc, unit)
}

// CurrentForDate returns the snapshot of a forecast day, or ErrNotFoundForDate.
func (s *Service) CurrentForDate(ctx context.Context, city, date string, unit units.TempUnit) (WeatherSnapshot, error) {
	doc, err := s.fetch(ctx, city, MaxForecastDays, true)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	snap, ok, err := ExtractDay(doc, date, unit)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	if !ok {
		return WeatherSnapshot{}, ErrNotFoundForDate
	}
	return snap, nil
}

// Hourly returns the hours of date, or of today when date is empty.
func (s *Service) Hourly(ctx context.Context, city, date string, unit units.TempUnit) ([]HourlyRecord, error) {
	days := 1
	if date != "" {
		days = MaxForecastDays
	}
	doc, err := s.fetch(ctx, city, days, true)
	if err != nil {
		return nil, err
	}
	return ExtractHourly(doc, date, unit)
}

// Daily returns the upcoming days, excluding today.
func (s *Service) Daily(ctx context.Context, city string, unit units.TempUnit) ([]DailyRecord, error) {
	doc, err := s.fetch(ctx, city, MaxForecastDays, true)
	if err != nil {
		return nil, err
	}
	return ExtractDaily(doc, unit)
}

// Stats returns current stats when date is empty, otherwise the stats of that
// forecast day or ErrNotFoundForDate.
func (s *Service) Stats(ctx context.Context, city, date string, prefs units.Preferences) (WeatherStats, error) {
	days := 1
	if date != "" {
		days = MaxForecastDays
	}
	doc, err := s.fetch(ctx, city, days, true)
	if err != nil {
		return WeatherStats{}, err
	}
	stats, ok, err := ExtractStats(doc, date, prefs)
	if err != nil {
		return WeatherStats{}, err
	}
	if !ok {
		return WeatherStats{}, ErrNotFoundForDate
	}
	return stats, nil
}

// SunMoment returns sunrise and sunset for date, or for today when date is empty.
func (s *Service) SunMoment(ctx context.Context, city, date string) (SunMoment, error) {
	doc, err := s.fetch(ctx, city, MaxForecastDays, false)
	if err != nil {
		return SunMoment{}, err
	}
	sm, ok, err := ExtractSunMoment(doc, date)
	if err != nil {
		return SunMoment{}, err
	}
	if !ok {
		return SunMoment{}, ErrNotFoundForDate
	}
	return sm, nil
}

// Briefing is what a notification job needs for one city: the current
// snapshot and today's alerts, both from a single provider call.
type Briefing struct {
	Current     WeatherSnapshot
	Temperature string // display form, e.g. "21°C"
	Alerts      []string
}

// Brief fetches today's forecast once and derives the snapshot and alerts.
func (s *Service) Brief(ctx context.Context, city string, unit units.TempUnit) (Briefing, error) {
	doc, err := s.fetch(ctx, city, 1, true)
	if err != nil {
		return Briefing{}, err
	}
	current, err := ExtractCurrent(doc, unit)
	if err != nil {
		return Briefing{}, err
	}
	hours, err := ExtractHourly(doc, "", unit)
	if err != nil {
		return Briefing{}, err
	}
	tempC := math.NaN()
	if doc.Current != nil {
		tempC = number(doc.Current.TempC)
	}
	return Briefing{
		Current:     current,
		Temperature: units.FormatTemperature(tempC, unit),
		Alerts:      EvaluateAlerts(hours),
	}, nil
}

// Alerts returns today's derived alerts for city.
func (s *Service) Alerts(ctx context.Context, city string) ([]string, error) {
	b, err := s.Brief(ctx, city, units.Celsius)
	if err != nil {
		return nil, err
	}
	return b.Alerts, nil
}
