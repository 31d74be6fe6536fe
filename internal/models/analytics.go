package models

import "time"

// Methodology describes how the report numbers were produced
type Methodology struct {
	RevenueModel    string `json:"revenue_model"`
	ConfidenceModel string `json:"confidence_model"`
	RiskModel       string `json:"risk_model"`
	FallbackModel   string `json:"fallback_model"`
}

// ForecastReport combines the revenue forecast with vacancy risk
type ForecastReport struct {
	GeneratedAt          time.Time        `json:"generated_at"`
	History              []RevenuePoint   `json:"history"`
	Forecast             []ForecastPoint  `json:"forecast"`
	AvgMonthlyRevenue    float64          `json:"avg_monthly_revenue"`
	GrowthRatePercent    float64          `json:"growth_rate_percent"`
	TotalForecastRevenue float64          `json:"total_forecast_revenue"`
	NextMonth            float64          `json:"next_month"`
	NextQuarter          float64          `json:"next_quarter"`
	NextHalfYear         float64          `json:"next_half_year"`
	RiskAssessments      []RiskAssessment `json:"risk_assessments"`
	RiskSummary          RiskSummary      `json:"risk_summary"`
	Methodology          Methodology      `json:"methodology"`
}
