package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/Dan9191/rental-analytics/internal/models"
)

// ReportXML renders a forecast report as an indented XML document
func ReportXML(report *models.ForecastReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ForecastReport")
	root.CreateAttr("generatedAt", report.GeneratedAt.Format(time.RFC3339))

	summary := root.CreateElement("Summary")
	addAmount(summary, "AvgMonthlyRevenue", report.AvgMonthlyRevenue)
	addAmount(summary, "TotalForecastRevenue", report.TotalForecastRevenue)
	addAmount(summary, "NextMonth", report.NextMonth)
	addAmount(summary, "NextQuarter", report.NextQuarter)
	addAmount(summary, "NextHalfYear", report.NextHalfYear)
	summary.CreateElement("GrowthRatePercent").SetText(decimal.NewFromFloat(report.GrowthRatePercent).StringFixed(2))

	history := root.CreateElement("History")
	for _, p := range report.History {
		el := history.CreateElement("Month")
		setPeriod(el, p.Month, p.Year)
		el.SetText(amount(p.Amount))
	}

	forecast := root.CreateElement("Forecast")
	for _, p := range report.Forecast {
		el := forecast.CreateElement("Month")
		setPeriod(el, p.Month, p.Year)
		el.CreateAttr("confidence", string(p.Confidence))
		addAmount(el, "Predicted", p.PredictedRevenue)
		addAmount(el, "Min", p.MinRevenue)
		addAmount(el, "Max", p.MaxRevenue)
	}

	risk := root.CreateElement("VacancyRisk")
	rs := report.RiskSummary
	totals := risk.CreateElement("Summary")
	addLevel(totals, models.RiskHigh, rs.HighCount, rs.HighRevenue)
	addLevel(totals, models.RiskMedium, rs.MediumCount, rs.MediumRevenue)
	addLevel(totals, models.RiskLow, rs.LowCount, rs.LowRevenue)
	addAmount(totals, "TotalAtRiskRevenue", rs.TotalAtRiskRevenue)

	for _, a := range report.RiskAssessments {
		el := risk.CreateElement("Lease")
		el.CreateAttr("id", strconv.FormatInt(a.LeaseID, 10))
		el.CreateAttr("level", string(a.RiskLevel))
		el.CreateAttr("score", strconv.Itoa(a.RiskScore))
		el.CreateElement("DaysUntilExpiry").SetText(strconv.Itoa(a.DaysUntilExpiry))
		el.CreateElement("MonthsRented").SetText(strconv.Itoa(a.MonthsRented))
		el.CreateElement("OverdueInvoices").SetText(strconv.Itoa(a.OverdueInvoiceCount))
		addAmount(el, "MonthlyRent", a.MonthlyRent)
	}

	m := root.CreateElement("Methodology")
	m.CreateElement("Revenue").SetText(report.Methodology.RevenueModel)
	m.CreateElement("Confidence").SetText(report.Methodology.ConfidenceModel)
	m.CreateElement("Risk").SetText(report.Methodology.RiskModel)
	m.CreateElement("Fallback").SetText(report.Methodology.FallbackModel)

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to write report XML: %w", err)
	}
	return out, nil
}

func amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func addAmount(parent *etree.Element, tag string, v float64) {
	parent.CreateElement(tag).SetText(amount(v))
}

func setPeriod(el *etree.Element, month, year int) {
	el.CreateAttr("month", strconv.Itoa(month))
	el.CreateAttr("year", strconv.Itoa(year))
}

func addLevel(parent *etree.Element, level models.RiskLevel, count int, revenue float64) {
	el := parent.CreateElement("Level")
	el.CreateAttr("name", string(level))
	el.CreateAttr("count", strconv.Itoa(count))
	el.SetText(amount(revenue))
}
