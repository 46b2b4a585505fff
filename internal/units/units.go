package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// TempUnit is the temperature unit a user prefers for display.
type TempUnit uint8

const (
	Celsius TempUnit = iota
	Fahrenheit
)

// WindUnit is the wind speed unit a user prefers for display.
type WindUnit uint8

const (
	KPH WindUnit = iota
	MPH
)

// NotAvailable is rendered in place of a value that could not be resolved.
const NotAvailable = "N/A"

// String returns the value persisted in user profiles.
func (u TempUnit) String() string {
	switch u {
	case Fahrenheit:
		return "Fahrenheit"
	default:
		return "Celsius"
	}
}

// Symbol returns the display suffix, e.g. "°C".
func (u TempUnit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// String returns the value persisted in user profiles.
func (u WindUnit) String() string {
	switch u {
	case MPH:
		return "mph"
	default:
		return "km/h"
	}
}

// Suffix returns the display suffix. The km/h suffix is "kmh" without a slash.
func (u WindUnit) Suffix() string {
	if u == MPH {
		return "mph"
	}
	return "kmh"
}

// ParseTempUnit maps a stored string to a TempUnit.
func ParseTempUnit(s string) (TempUnit, error) {
	switch s {
	case "Celsius":
		return Celsius, nil
	case "Fahrenheit":
		return Fahrenheit, nil
	}
	return Celsius, fmt.Errorf("unknown temperature unit %q", s)
}

// ParseWindUnit maps a stored string to a WindUnit.
func ParseWindUnit(s string) (WindUnit, error) {
	switch s {
	case "km/h":
		return KPH, nil
	case "mph":
		return MPH, nil
	}
	return KPH, fmt.Errorf("unknown wind speed unit %q", s)
}

// Preferences bundles the unit choices for one request.
type Preferences struct {
	Temp TempUnit `json:"tempUnit"`
	Wind WindUnit `json:"windSpeedUnit"`
}

// DefaultPreferences is used when a profile has no stored units.
var DefaultPreferences = Preferences{Temp: Celsius, Wind: KPH}

// PreferencesFromStrings converts stored profile strings, falling back to the
// defaults for empty or unrecognised values.
func PreferencesFromStrings(tempUnit, windUnit string) Preferences {
	p := DefaultPreferences
	if u, err := ParseTempUnit(tempUnit); err == nil {
		p.Temp = u
	}
	if u, err := ParseWindUnit(windUnit); err == nil {
		p.Wind = u
	}
	return p
}

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func KphToMph(k float64) float64 {
	return k * 0.621371
}

// Temperature converts a Celsius source value into unit. NaN stays NaN.
func Temperature(c float64, unit TempUnit) float64 {
	if unit == Fahrenheit {
		return CelsiusToFahrenheit(c)
	}
	return c
}

// WindSpeed converts a km/h source value into unit. NaN stays NaN.
func WindSpeed(kph float64, unit WindUnit) float64 {
	if unit == MPH {
		return KphToMph(kph)
	}
	return kph
}

// Truncate drops the fractional part. ok is false for NaN, infinities and
// values outside the int range, whose conversion is undefined.
func Truncate(v float64) (n int, ok bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	t := math.Trunc(v)
	if t >= float64(math.MaxInt) || t < float64(math.MinInt) {
		return 0, false
	}
	return int(t), true
}

// FormatTemperature renders a Celsius value for display in unit, truncated
// toward zero: 21.9 -> "21°C".
func FormatTemperature(c float64, unit TempUnit) string {
	n, ok := Truncate(Temperature(c, unit))
	if !ok {
		return NotAvailable
	}
	return strconv.Itoa(n) + unit.Symbol()
}

// FormatWindSpeed renders a km/h value for display in unit: 100 -> "62 mph".
func FormatWindSpeed(kph float64, unit WindUnit) string {
	n, ok := Truncate(WindSpeed(kph, unit))
	if !ok {
		return NotAvailable
	}
	return strconv.Itoa(n) + " " + unit.Suffix()
}

// FormatNumber renders a converted value as a plain numeric string; NaN renders "NaN".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseTemperature reads the integer prefix of a formatted display value.
func ParseTemperature(display string) (int, error) {
	s := strings.TrimSpace(display)
	end := 0
	for i, r := range s {
		if unicode.IsDigit(r) || (i == 0 && r == '-') {
			end = i + 1
			continue
		}
		break
	}
	if end == 0 {
		return 0, fmt.Errorf("no numeric prefix in %q", display)
	}
	return strconv.Atoi(s[:end])
}
