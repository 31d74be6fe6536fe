package analytics

import (
	"math"
	"time"

	"github.com/Dan9191/rental-analytics/internal/models"
)

// Revenue forecasting policy
const (
	// SingleSampleUncertainty is the assumed relative deviation when history is too short to measure it
	SingleSampleUncertainty = 0.2
	// ConfidenceBandFactor scales the standard deviation into the half-width of the confidence band
	ConfidenceBandFactor = 0.3
	// MinPointsForVarianceGrade is the history length from which confidence is graded by variance
	MinPointsForVarianceGrade = 6
	// HighConfidenceRatio and MediumConfidenceRatio bound stdDev/avgRevenue for each grade
	HighConfidenceRatio   = 0.2
	MediumConfidenceRatio = 0.4
)

// RevenueForecast is the fitted trend and its projection
type RevenueForecast struct {
	Slope                float64
	Intercept            float64
	AvgRevenue           float64
	StdDev               float64
	Points               []models.ForecastPoint
	TotalForecastRevenue float64
	GrowthRatePercent    float64
}

// ForecastRevenue fits a least-squares trend over history and projects horizon months.
// baseline is only used when history is empty. now only labels months when there is no history.
func ForecastRevenue(history []models.RevenuePoint, horizon int, baseline float64, now time.Time) RevenueForecast {
	n := len(history)
	slope, intercept := fitTrend(history, baseline)

	avg := intercept
	if n > 0 {
		avg = mean(history)
	}

	var stdDev float64
	switch {
	case n > 1:
		stdDev = populationStdDev(history, avg)
	case n == 1:
		stdDev = SingleSampleUncertainty * avg
	default:
		stdDev = SingleSampleUncertainty * intercept
	}

	confidence := classifyConfidence(n, stdDev, avg)
	band := ConfidenceBandFactor * stdDev

	period := models.Period{Month: int(now.Month()), Year: now.Year()}
	if n > 0 {
		last := history[n-1]
		period = models.Period{Month: last.Month, Year: last.Year}
	}

	if horizon < 0 {
		horizon = 0
	}
	forecast := RevenueForecast{
		Slope:      slope,
		Intercept:  intercept,
		AvgRevenue: avg,
		StdDev:     stdDev,
		Points:     make([]models.ForecastPoint, 0, horizon),
	}
	for i := 1; i <= horizon; i++ {
		period = period.Next()

		predicted := intercept
		if n > 0 {
			predicted = math.Max(0, slope*float64(n+i)+intercept)
		}

		forecast.Points = append(forecast.Points, models.ForecastPoint{
			Month:            period.Month,
			Year:             period.Year,
			PredictedRevenue: predicted,
			MinRevenue:       math.Max(0, predicted-band),
			MaxRevenue:       predicted + band,
			Confidence:       confidence,
		})
		forecast.TotalForecastRevenue += predicted
	}

	// Declining or flat trends are reported as 0% growth.
	if avg > 0 && slope > 0 {
		forecast.GrowthRatePercent = slope / avg * 100
	}

	return forecast
}

// fitTrend returns slope and intercept of y = slope*x + intercept with x = 1..n
func fitTrend(history []models.RevenuePoint, baseline float64) (float64, float64) {
	n := len(history)
	switch n {
	case 0:
		return 0, baseline
	case 1:
		return 0, history[0].Amount
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, p := range history {
		x := float64(i + 1)
		sumX += x
		sumY += p.Amount
		sumXY += x * p.Amount
		sumX2 += x * x
	}

	fn := float64(n)
	denominator := fn*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0, sumY / fn
	}

	slope := (fn*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / fn
	return slope, intercept
}

func classifyConfidence(n int, stdDev, avg float64) models.Confidence {
	switch {
	case n == 0:
		return models.ConfidenceLow
	case n < MinPointsForVarianceGrade:
		return models.ConfidenceMedium
	case stdDev < HighConfidenceRatio*avg:
		return models.ConfidenceHigh
	case stdDev < MediumConfidenceRatio*avg:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func mean(history []models.RevenuePoint) float64 {
	var sum float64
	for _, p := range history {
		sum += p.Amount
	}
	return sum / float64(len(history))
}

func populationStdDev(history []models.RevenuePoint, avg float64) float64 {
	var sq float64
	for _, p := range history {
		d := p.Amount - avg
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(history)))
}
