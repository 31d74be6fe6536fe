package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Dan9191/rental-analytics/internal/models"
)

// Vacancy risk scoring policy
const (
	// Expiry proximity thresholds in days and the weight each one adds
	ExpiryCriticalDays = 30
	ExpiryWarningDays  = 60
	ExpiryWatchDays    = 90

	ExpiryCriticalWeight = 50
	ExpiryWarningWeight  = 30
	ExpiryWatchWeight    = 15

	// OverdueInvoiceWeight is added per overdue invoice, up to MaxDelinquencyWeight
	OverdueInvoiceWeight = 10
	MaxDelinquencyWeight = 30

	// Tenure discounts subtracted after the sum, by months rented
	LongTenureMonths     = 12
	LongTenureDiscount   = 20
	MediumTenureMonths   = 6
	MediumTenureDiscount = 10

	// Score thresholds for each risk level
	HighRiskScore   = 50
	MediumRiskScore = 25

	// MaxRiskScore is the upper bound of the score scale. The formula itself tops out at
	// ExpiryCriticalWeight + MaxDelinquencyWeight.
	MaxRiskScore = 100

	daysPerMonth = 30
)

// AssessLease scores a single lease. The second return value reports whether the lease
// belongs in the at-risk list; open-ended leases are never scored.
func AssessLease(lease models.LeaseSnapshot, now time.Time) (models.RiskAssessment, bool) {
	if lease.EndDate == nil {
		return models.RiskAssessment{}, false
	}
	end := *lease.EndDate

	daysUntilExpiry := int(math.Ceil(end.Sub(now).Hours() / 24))
	monthsRented := int(math.Floor(end.Sub(lease.StartDate).Hours() / 24 / daysPerMonth))
	if monthsRented < 0 {
		monthsRented = 0
	}

	score := expiryWeight(daysUntilExpiry) + delinquencyWeight(lease.OverdueInvoiceCount)
	score -= tenureDiscount(monthsRented)
	if score < 0 {
		score = 0
	}
	if score > MaxRiskScore {
		score = MaxRiskScore
	}

	assessment := models.RiskAssessment{
		LeaseID:             lease.LeaseID,
		DaysUntilExpiry:     daysUntilExpiry,
		MonthsRented:        monthsRented,
		OverdueInvoiceCount: lease.OverdueInvoiceCount,
		RiskScore:           score,
		RiskLevel:           ClassifyRisk(score),
		MonthlyRent:         lease.MonthlyRent,
	}
	return assessment, score > 0 || daysUntilExpiry <= ExpiryWatchDays
}

// ScoreVacancyRisk assesses every lease and returns the at-risk ones ordered by
// descending score, together with their per-level summary.
func ScoreVacancyRisk(leases []models.LeaseSnapshot, now time.Time) ([]models.RiskAssessment, models.RiskSummary) {
	assessments := make([]models.RiskAssessment, 0, len(leases))
	for _, lease := range leases {
		if a, ok := AssessLease(lease, now); ok {
			assessments = append(assessments, a)
		}
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].RiskScore > assessments[j].RiskScore
	})

	return assessments, Summarize(assessments)
}

// Summarize counts assessments and sums their rent per risk level
func Summarize(assessments []models.RiskAssessment) models.RiskSummary {
	var s models.RiskSummary
	for _, a := range assessments {
		switch a.RiskLevel {
		case models.RiskHigh:
			s.HighCount++
			s.HighRevenue += a.MonthlyRent
		case models.RiskMedium:
			s.MediumCount++
			s.MediumRevenue += a.MonthlyRent
		default:
			s.LowCount++
			s.LowRevenue += a.MonthlyRent
		}
	}
	s.TotalAtRiskRevenue = s.HighRevenue + s.MediumRevenue
	return s
}

// ClassifyRisk maps a score onto its risk level
func ClassifyRisk(score int) models.RiskLevel {
	switch {
	case score >= HighRiskScore:
		return models.RiskHigh
	case score >= MediumRiskScore:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func expiryWeight(daysUntilExpiry int) int {
	switch {
	case daysUntilExpiry <= ExpiryCriticalDays:
		return ExpiryCriticalWeight
	case daysUntilExpiry <= ExpiryWarningDays:
		return ExpiryWarningWeight
	case daysUntilExpiry <= ExpiryWatchDays:
		return ExpiryWatchWeight
	default:
		return 0
	}
}

func delinquencyWeight(overdue int) int {
	if overdue <= 0 {
		return 0
	}
	if overdue*OverdueInvoiceWeight > MaxDelinquencyWeight {
		return MaxDelinquencyWeight
	}
	return overdue * OverdueInvoiceWeight
}

func tenureDiscount(monthsRented int) int {
	switch {
	case monthsRented >= LongTenureMonths:
		return LongTenureDiscount
	case monthsRented >= MediumTenureMonths:
		return MediumTenureDiscount
	default:
		return 0
	}
}
