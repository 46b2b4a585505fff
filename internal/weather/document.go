package weather

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Document is the weatherapi.com forecast.json payload. Fields are decoded
// one by one: a field with an unexpected JSON type is left unset instead of
// failing the whole document. Only the root and "forecast.forecastday" must
// have the right shape.
type Document struct {
	Current  *Current  `json:"current"`
	Forecast *Forecast `json:"forecast"`
}

// OptFloat is an optional number. A missing, null or mistyped value is unset.
// Numeric strings such as "12.5" are accepted.
type OptFloat struct {
	Value float64
	Valid bool
}

// Float returns the value, or NaN when unset.
func (o OptFloat) Float() float64 {
	if !o.Valid {
		return math.NaN()
	}
	return o.Value
}

func (o *OptFloat) UnmarshalJSON(b []byte) error {
	*o = OptFloat{}
	var f float64
	if isNull(b) {
		return nil
	}
	if err := json.Unmarshal(b, &f); err == nil {
		*o = OptFloat{Value: f, Valid: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*o = OptFloat{Value: f, Valid: true}
		}
	}
	return nil
}

// OptString is an optional string. A missing, null or non-string value is unset.
type OptString struct {
	Value string
	Valid bool
}

// Or returns the value, or def when unset.
func (o OptString) Or(def string) string {
	if !o.Valid {
		return def
	}
	return o.Value
}

func (o *OptString) UnmarshalJSON(b []byte) error {
	*o = OptString{}
	var s string
	if !isNull(b) && json.Unmarshal(b, &s) == nil {
		*o = OptString{Value: s, Valid: true}
	}
	return nil
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}

type Condition struct {
	Text OptString `json:"text"`
	Icon OptString `json:"icon"`
}

func (c *Condition) UnmarshalJSON(b []byte) error {
	type plain Condition
	var p plain
	if json.Unmarshal(b, &p) == nil {
		*c = Condition(p)
	}
	return nil
}

type Current struct {
	TempC      OptFloat   `json:"temp_c"`
	FeelsLikeC OptFloat   `json:"feelslike_c"`
	WindKph    OptFloat   `json:"wind_kph"`
	Condition  *Condition `json:"condition"`
}

func (c *Current) UnmarshalJSON(b []byte) error {
	type plain Current
	var p plain
	if json.Unmarshal(b, &p) == nil {
		*c = Current(p)
	}
	return nil
}

// Forecast holds the per-day entries. Days is nil when the "forecastday" key
// is absent and empty when the provider returned an empty array.
type Forecast struct {
	Days []ForecastDay `json:"forecastday"`
}

// ForecastDay covers one calendar date.
type ForecastDay struct {
	Date  OptString   `json:"date"`
	Day   *DaySummary `json:"day"`
	Astro *Astro      `json:"astro"`
	Hours []Hour      `json:"hour"`
}

// UnmarshalJSON leaves a non-object entry empty and drops a "hour" value
// that is not an array.
func (d *ForecastDay) UnmarshalJSON(b []byte) error {
	var raw struct {
		Date  OptString       `json:"date"`
		Day   *DaySummary     `json:"day"`
		Astro *Astro          `json:"astro"`
		Hours json.RawMessage `json:"hour"`
	}
	if json.Unmarshal(b, &raw) != nil {
		*d = ForecastDay{}
		return nil
	}
	*d = ForecastDay{Date: raw.Date, Day: raw.Day, Astro: raw.Astro}

	var hours []json.RawMessage
	if len(raw.Hours) == 0 || json.Unmarshal(raw.Hours, &hours) != nil {
		return nil
	}
	d.Hours = make([]Hour, 0, len(hours))
	for _, m := range hours {
		var h Hour
		_ = json.Unmarshal(m, &h)
		d.Hours = append(d.Hours, h)
	}
	return nil
}

type DaySummary struct {
	MaxTempC    OptFloat   `json:"maxtemp_c"`
	MinTempC    OptFloat   `json:"mintemp_c"`
	AvgTempC    OptFloat   `json:"avgtemp_c"`
	MaxWindKph  OptFloat   `json:"maxwind_kph"`
	AvgHumidity OptFloat   `json:"avghumidity"`
	Condition   *Condition `json:"condition"`
}

func (s *DaySummary) UnmarshalJSON(b []byte) error {
	type plain DaySummary
	var p plain
	if json.Unmarshal(b, &p) == nil {
		*s = DaySummary(p)
	}
	return nil
}

type Astro struct {
	Sunrise OptString `json:"sunrise"`
	Sunset  OptString `json:"sunset"`
}

func (a *Astro) UnmarshalJSON(b []byte) error {
	type plain Astro
	var p plain
	if json.Unmarshal(b, &p) == nil {
		*a = Astro(p)
	}
	return nil
}

type Hour struct {
	Time      OptString  `json:"time"`
	TempC     OptFloat   `json:"temp_c"`
	Condition *Condition `json:"condition"`
}

func (h *Hour) UnmarshalJSON(b []byte) error {
	type plain Hour
	var p plain
	if json.Unmarshal(b, &p) == nil {
		*h = Hour(p)
	}
	return nil
}

// DateString returns the forecast day's date or "" when absent.
func (d ForecastDay) DateString() string {
	return d.Date.Or("")
}
