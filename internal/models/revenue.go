package models

// Confidence is the coarse reliability grade of a forecast point
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Period identifies one calendar month
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Next returns the calendar month following p
func (p Period) Next() Period {
	if p.Month >= 12 {
		return Period{Month: 1, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

// RevenuePoint is the total paid revenue collected in one calendar month
type RevenuePoint struct {
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// ForecastPoint is the projected revenue for one future month
type ForecastPoint struct {
	Month            int        `json:"month"`
	Year             int        `json:"year"`
	PredictedRevenue float64    `json:"predicted_revenue"`
	MinRevenue       float64    `json:"min_revenue"`
	MaxRevenue       float64    `json:"max_revenue"`
	Confidence       Confidence `json:"confidence"`
}
