package export

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/rental-analytics/internal/models"
)

func TestReportXML(t *testing.T) {
	report := &models.ForecastReport{
		GeneratedAt:  time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC),
		History:      []models.RevenuePoint{{Month: 9, Year: 2026, Amount: 1200.5}},
		Forecast:     []models.ForecastPoint{{Month: 10, Year: 2026, PredictedRevenue: 1300, MinRevenue: 1250, MaxRevenue: 1350, Confidence: models.ConfidenceMedium}},
		NextMonth:    1300,
		NextQuarter:  1300,
		NextHalfYear: 1300,
		RiskAssessments: []models.RiskAssessment{
			{LeaseID: 7, DaysUntilExpiry: 20, MonthsRented: 2, OverdueInvoiceCount: 2, RiskScore: 70, RiskLevel: models.RiskHigh, MonthlyRent: 500},
		},
		RiskSummary: models.RiskSummary{HighCount: 1, HighRevenue: 500, TotalAtRiskRevenue: 500},
		Methodology: models.Methodology{RevenueModel: "ols"},
	}

	out, err := ReportXML(report)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("ForecastReport")
	require.NotNil(t, root)
	assert.Equal(t, "2026-10-14T00:00:00Z", root.SelectAttrValue("generatedAt", ""))
	assert.Equal(t, "1300.00", root.FindElement("./Summary/NextQuarter").Text())
	assert.Equal(t, "1200.50", root.FindElement("./History/Month").Text())

	month := root.FindElement("./Forecast/Month")
	require.NotNil(t, month)
	assert.Equal(t, "MEDIUM", month.SelectAttrValue("confidence", ""))
	assert.Equal(t, "1250.00", month.FindElement("./Min").Text())

	lease := root.FindElement("./VacancyRisk/Lease")
	require.NotNil(t, lease)
	assert.Equal(t, "7", lease.SelectAttrValue("id", ""))
	assert.Equal(t, "70", lease.SelectAttrValue("score", ""))
	assert.Len(t, root.FindElements("./VacancyRisk/Summary/Level"), 3)
	assert.Equal(t, "500.00", root.FindElement("./VacancyRisk/Summary/TotalAtRiskRevenue").Text())
	assert.Equal(t, "ols", root.FindElement("./Methodology/Revenue").Text())
}
