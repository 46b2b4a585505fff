package weather

import (
	"math"

	"github.com/i474232898/weather-app-core/internal/units"
)

// forecastDays returns the forecast day list, or ErrMalformedResponse when
// the document has no "forecast" or "forecast.forecastday" key.
func forecastDays(doc *Document) ([]ForecastDay, error) {
	if doc == nil || doc.Forecast == nil || doc.Forecast.Days == nil {
		return nil, ErrMalformedResponse
	}
	return doc.Forecast.Days, nil
}

// ExtractCurrent reads the current temperature and condition plus the first
// forecast day's min and max.
func ExtractCurrent(doc *Document, unit units.TempUnit) (WeatherSnapshot, error) {
	days, err := forecastDays(doc)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	current := math.NaN()
	condition := Unknown
	if doc.Current != nil {
		current = number(doc.Current.TempC)
		condition = conditionText(doc.Current.Condition)
	}

	minC, maxC := math.NaN(), math.NaN()
	if len(days) > 0 && days[0].Day != nil {
		minC = number(days[0].Day.MinTempC)
		maxC = number(days[0].Day.MaxTempC)
	}

	return WeatherSnapshot{
		Condition:   condition,
		CurrentTemp: units.FormatNumber(units.Temperature(current, unit)),
		MinTemp:     units.FormatNumber(units.Temperature(minC, unit)),
		MaxTemp:     units.FormatNumber(units.Temperature(maxC, unit)),
	}, nil
}

// ExtractDay builds a snapshot for the forecast day matching date, using the
// day's average as the current temperature.
func ExtractDay(doc *Document, date string, unit units.TempUnit) (WeatherSnapshot, bool, error) {
	days, err := forecastDays(doc)
	if err != nil {
		return WeatherSnapshot{}, false, err
	}
	fd, ok := FindForecastDay(days, date)
	if !ok {
		return WeatherSnapshot{}, false, nil
	}

	avgC, minC, maxC := math.NaN(), math.NaN(), math.NaN()
	condition := Unknown
	if fd.Day != nil {
		avgC = number(fd.Day.AvgTempC)
		minC = number(fd.Day.MinTempC)
		maxC = number(fd.Day.MaxTempC)
		condition = conditionText(fd.Day.Condition)
	}

	return WeatherSnapshot{
		Condition:   condition,
		CurrentTemp: units.FormatNumber(units.Temperature(avgC, unit)),
		MinTemp:     units.FormatNumber(units.Temperature(minC, unit)),
		MaxTemp:     units.FormatNumber(units.Temperature(maxC, unit)),
	}, true, nil
}

// ExtractHourly returns the hours of the day matching date (the first day when
// date is empty) in provider order. A date with no matching day yields no records.
func ExtractHourly(doc *Document, date string, unit units.TempUnit) ([]HourlyRecord, error) {
	days, err := forecastDays(doc)
	if err != nil {
		return nil, err
	}

	records := []HourlyRecord{}
	fd, ok := selectDay(days, date)
	if !ok {
		return records, nil
	}

	for _, h := range fd.Hours {
		tempC := number(h.TempC)
		records = append(records, HourlyRecord{
			Time:        text(h.Time, Unknown),
			Temperature: units.FormatNumber(units.Temperature(tempC, unit)),
			Condition:   conditionText(h.Condition),
			IconRef:     conditionIcon(h.Condition),
			TempC:       Measure(tempC),
		})
	}
	return records, nil
}

// ExtractDaily lists the upcoming days, skipping index 0 (today).
func ExtractDaily(doc *Document, unit units.TempUnit) ([]DailyRecord, error) {
	days, err := forecastDays(doc)
	if err != nil {
		return nil, err
	}

	records := []DailyRecord{}
	for i := 1; i < len(days); i++ {
		fd := days[i]
		maxC := math.NaN()
		condition, icon := Unknown, ""
		if fd.Day != nil {
			maxC = number(fd.Day.MaxTempC)
			condition = conditionText(fd.Day.Condition)
			icon = conditionIcon(fd.Day.Condition)
		}
		records = append(records, DailyRecord{
			Date:        text(fd.Date, Unknown),
			Temperature: Measure(units.Temperature(maxC, unit)),
			Condition:   condition,
			IconRef:     icon,
		})
	}
	return records, nil
}

// ExtractStats returns feels-like, humidity and wind. With an empty date it
// reads current conditions; otherwise the matching day's averages. ok is false
// when no day matches date.
func ExtractStats(doc *Document, date string, prefs units.Preferences) (WeatherStats, bool, error) {
	days, err := forecastDays(doc)
	if err != nil {
		return WeatherStats{}, false, err
	}

	if date == "" {
		feels, wind := math.NaN(), math.NaN()
		if doc.Current != nil {
			feels = number(doc.Current.FeelsLikeC)
			wind = number(doc.Current.WindKph)
		}
		humidity := math.NaN()
		if len(days) > 0 && days[0].Day != nil {
			humidity = number(days[0].Day.AvgHumidity)
		}
		return newStats(feels, humidity, wind, prefs), true, nil
	}

	fd, ok := FindForecastDay(days, date)
	if !ok {
		return WeatherStats{}, false, nil
	}
	feels, humidity, wind := math.NaN(), math.NaN(), math.NaN()
	if fd.Day != nil {
		feels = number(fd.Day.AvgTempC)
		humidity = number(fd.Day.AvgHumidity)
		wind = number(fd.Day.MaxWindKph)
	}
	return newStats(feels, humidity, wind, prefs), true, nil
}

// ExtractSunMoment returns the astro times of the day matching date, or of the
// first day when date is empty.
func ExtractSunMoment(doc *Document, date string) (SunMoment, bool, error) {
	days, err := forecastDays(doc)
	if err != nil {
		return SunMoment{}, false, err
	}
	fd, ok := selectDay(days, date)
	if !ok {
		return SunMoment{}, false, nil
	}

	sm := SunMoment{Sunrise: Unknown, Sunset: Unknown}
	if fd.Astro != nil {
		sm.Sunrise = text(fd.Astro.Sunrise, Unknown)
		sm.Sunset = text(fd.Astro.Sunset, Unknown)
	}
	return sm, true, nil
}

func newStats(feelsC, humidity, windKph float64, prefs units.Preferences) WeatherStats {
	return WeatherStats{
		FeelsLike: units.FormatTemperature(feelsC, prefs.Temp),
		Humidity:  percent(humidity),
		WindSpeed: units.FormatWindSpeed(windKph, prefs.Wind),
	}
}

// percent truncates to 0..100; missing values become 0.
func percent(v float64) int {
	n, ok := units.Truncate(v)
	if !ok || n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func number(o OptFloat) float64 {
	return o.Float()
}

func text(o OptString, def string) string {
	return o.Or(def)
}

func conditionText(c *Condition) string {
	if c == nil {
		return Unknown
	}
	return text(c.Text, Unknown)
}

func conditionIcon(c *Condition) string {
	if c == nil {
		return ""
	}
	return text(c.Icon, "")
}
