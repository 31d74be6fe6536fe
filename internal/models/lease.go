package models

import "time"

// RiskLevel buckets a numeric vacancy risk score
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// LeaseSnapshot is a read-only view of one active lease
type LeaseSnapshot struct {
	LeaseID             int64      `json:"lease_id"`
	StartDate           time.Time  `json:"start_date"`
	EndDate             *time.Time `json:"end_date,omitempty"` // nil for open-ended leases
	MonthlyRent         float64    `json:"monthly_rent"`
	OverdueInvoiceCount int        `json:"overdue_invoice_count"`
}

// RiskAssessment is the vacancy risk computed for one lease
type RiskAssessment struct {
	LeaseID             int64     `json:"lease_id"`
	DaysUntilExpiry     int       `json:"days_until_expiry"`
	MonthsRented        int       `json:"months_rented"`
	OverdueInvoiceCount int       `json:"overdue_invoice_count"`
	RiskScore           int       `json:"risk_score"`
	RiskLevel           RiskLevel `json:"risk_level"`
	MonthlyRent         float64   `json:"monthly_rent"`
}

// RiskSummary aggregates assessments per risk level
type RiskSummary struct {
	HighCount          int     `json:"high_count"`
	MediumCount        int     `json:"medium_count"`
	LowCount           int     `json:"low_count"`
	HighRevenue        float64 `json:"high_revenue"`
	MediumRevenue      float64 `json:"medium_revenue"`
	LowRevenue         float64 `json:"low_revenue"`
	TotalAtRiskRevenue float64 `json:"total_at_risk_revenue"` // HIGH + MEDIUM only
}
