package weather

// FindForecastDay returns the first day whose date equals date exactly
// ("2006-01-02"). Days without a date never match.
func FindForecastDay(days []ForecastDay, date string) (ForecastDay, bool) {
	if date == "" {
		return ForecastDay{}, false
	}
	for _, d := range days {
		if d.Date.Valid && d.Date.Value == date {
			return d, true
		}
	}
	return ForecastDay{}, false
}

// selectDay picks the day for date, or the first day when date is empty.
func selectDay(days []ForecastDay, date string) (ForecastDay, bool) {
	if date == "" {
		if len(days) == 0 {
			return ForecastDay{}, false
		}
		return days[0], true
	}
	return FindForecastDay(days, date)
}
