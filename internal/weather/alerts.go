package weather

import (
	"fmt"
	"math"

	"github.com/i474232898/weather-app-core/internal/common"
)

// ExtremeHeatC is the Celsius temperature above which a heat alert is raised.
const ExtremeHeatC = 35.0

// EvaluateAlerts scans hourly records in order and returns human-readable
// alerts. Each record is checked for rain, then snow, then extreme heat; one
// hour may produce several alerts. Records without a temperature are skipped.
func EvaluateAlerts(records []HourlyRecord) []string {
	alerts := []string{}
	for _, r := range records {
		tempC := r.TempC.Float()
		// No temperature means no alerts for the hour, rain and snow included.
		if math.IsNaN(tempC) {
			continue
		}
		at := r.Clock()
		if common.ContainsFold(r.Condition, "rain") {
			alerts = append(alerts, fmt.Sprintf("Rain expected at %s", at))
		}
		if common.ContainsFold(r.Condition, "snow") {
			alerts = append(alerts, fmt.Sprintf("Snow expected at %s", at))
		}
		if tempC > ExtremeHeatC {
			alerts = append(alerts, fmt.Sprintf("Extreme heat expected at %s", at))
		}
	}
	return alerts
}
