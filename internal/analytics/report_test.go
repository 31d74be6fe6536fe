package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/rental-analytics/internal/models"
)

func TestComputeForecastReport_Rollups(t *testing.T) {
	history := series(10, 2025, 900, 950, 1000, 1020, 980, 1100, 1150, 1120, 1200, 1250, 1230, 1300)
	leases := []models.LeaseSnapshot{
		leaseEnding(1, 20, 70, 2, 500),
		leaseEnding(2, 300, 400, 0, 700),
	}

	report := ComputeForecastReport(history, leases, testNow, 6, 0)

	require.Len(t, report.Forecast, 6)
	f := report.Forecast
	assert.Equal(t, f[0].PredictedRevenue, report.NextMonth)
	assert.Equal(t, f[0].PredictedRevenue+f[1].PredictedRevenue+f[2].PredictedRevenue, report.NextQuarter)

	var half float64
	for _, p := range f {
		half += p.PredictedRevenue
	}
	assert.Equal(t, half, report.NextHalfYear)
	assert.Equal(t, half, report.TotalForecastRevenue)

	assert.Equal(t, history, report.History)
	assert.Equal(t, testNow, report.GeneratedAt)
	assert.Greater(t, report.GrowthRatePercent, 0.0)
	assert.InDelta(t, 1100.0, report.AvgMonthlyRevenue, 1e-9)

	require.Len(t, report.RiskAssessments, 1)
	assert.Equal(t, int64(1), report.RiskAssessments[0].LeaseID)
	assert.Equal(t, 1, report.RiskSummary.HighCount)
	assert.Equal(t, 500.0, report.RiskSummary.TotalAtRiskRevenue)
	assert.NotEmpty(t, report.Methodology.RevenueModel)
	assert.NotEmpty(t, report.Methodology.RiskModel)
}

func TestComputeForecastReport_EmptyInputs(t *testing.T) {
	report := ComputeForecastReport(nil, nil, testNow, 6, 1300)

	require.Len(t, report.Forecast, 6)
	for _, p := range report.Forecast {
		assert.Equal(t, 1300.0, p.PredictedRevenue)
		assert.Equal(t, models.ConfidenceLow, p.Confidence)
	}
	assert.Equal(t, 1300.0, report.NextMonth)
	assert.Equal(t, 3900.0, report.NextQuarter)
	assert.Equal(t, 7800.0, report.NextHalfYear)
	assert.Equal(t, 1300.0, report.AvgMonthlyRevenue)
	assert.Empty(t, report.History)
	assert.Empty(t, report.RiskAssessments)
}

func TestComputeForecastReport_ShortHorizon(t *testing.T) {
	report := ComputeForecastReport(series(1, 2026, 100, 200), nil, testNow, 2, 0)

	require.Len(t, report.Forecast, 2)
	assert.Equal(t, report.Forecast[0].PredictedRevenue+report.Forecast[1].PredictedRevenue, report.NextQuarter)
	assert.Equal(t, report.NextQuarter, report.NextHalfYear)

	empty := ComputeForecastReport(series(1, 2026, 100, 200), nil, testNow, 0, 0)
	assert.Zero(t, empty.NextMonth)
	assert.Zero(t, empty.NextQuarter)
}

func TestComputeForecastReport_Deterministic(t *testing.T) {
	history := series(1, 2026, 1000000, 1000000, 1000000, 1000000, 1000000, 2000000, 2000000, 2000000, 2000000, 2000000)
	leases := []models.LeaseSnapshot{
		leaseEnding(1, 20, 70, 2, 500),
		leaseEnding(2, 50, 300, 1, 700),
		leaseEnding(3, 50, 300, 1, 800),
		{LeaseID: 4, StartDate: testNow},
	}

	first, err := json.Marshal(ComputeForecastReport(history, leases, testNow, 3, 0))
	require.NoError(t, err)
	second, err := json.Marshal(ComputeForecastReport(history, leases, testNow, 3, 0))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestComputeForecastReport_DoesNotAliasHistory(t *testing.T) {
	history := series(1, 2026, 100, 200)
	report := ComputeForecastReport(history, nil, testNow, 1, 0)

	report.History[0].Amount = -1
	assert.Equal(t, 100.0, history[0].Amount)
}
