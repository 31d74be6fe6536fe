// Package analytics turns billing history and active leases into a revenue forecast
// and a vacancy risk ranking. Every function is pure: inputs are never mutated and
// the current time is always passed in.
package analytics

import (
	"time"

	"github.com/Dan9191/rental-analytics/internal/models"
)

const quarterMonths = 3

// methodology is static metadata attached to every report
var methodology = models.Methodology{
	RevenueModel:    "Ordinary least squares trend over monthly paid revenue, projected forward; flat baseline when no history exists",
	ConfidenceModel: "Band of ±0.3 standard deviations; HIGH below 20% and MEDIUM below 40% relative deviation with at least 6 months of history",
	RiskModel:       "Expiry proximity (50/30/15 within 30/60/90 days) plus 10 per overdue invoice capped at 30, minus 20/10 for 12/6 months of tenure",
	FallbackModel:   "Sum of active lease rent including expected utility charges",
}

// ComputeForecastReport builds the full analytics report for the given snapshot.
// fallbackBaseline is the monthly revenue assumed when history is empty.
func ComputeForecastReport(history []models.RevenuePoint, leases []models.LeaseSnapshot, now time.Time, horizon int, fallbackBaseline float64) models.ForecastReport {
	forecast := ForecastRevenue(history, horizon, fallbackBaseline, now)
	assessments, summary := ScoreVacancyRisk(leases, now)

	echoed := make([]models.RevenuePoint, len(history))
	copy(echoed, history)

	report := models.ForecastReport{
		GeneratedAt:          now,
		History:              echoed,
		Forecast:             forecast.Points,
		AvgMonthlyRevenue:    forecast.AvgRevenue,
		GrowthRatePercent:    forecast.GrowthRatePercent,
		TotalForecastRevenue: forecast.TotalForecastRevenue,
		RiskAssessments:      assessments,
		RiskSummary:          summary,
		Methodology:          methodology,
	}

	for i, p := range forecast.Points {
		if i == 0 {
			report.NextMonth = p.PredictedRevenue
		}
		if i < quarterMonths {
			report.NextQuarter += p.PredictedRevenue
		}
		report.NextHalfYear += p.PredictedRevenue
	}

	return report
}
