package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-analytics/internal/config"
	"github.com/Dan9191/rental-analytics/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendRiskDigest mails the HIGH and MEDIUM risk leases of a report to the given recipients
func (s *Sender) SendRiskDigest(to []string, report *models.ForecastReport) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = to
	e.Subject = fmt.Sprintf("Vacancy risk digest for %s: %d high, %d medium",
		report.GeneratedAt.Format("2006-01-02"), report.RiskSummary.HighCount, report.RiskSummary.MediumCount)
	e.Text = []byte(DigestBody(report))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send risk digest to %s: %v", strings.Join(to, ", "), err)
		return fmt.Errorf("failed to send risk digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", strings.Join(to, ", "), e.Subject)
	return nil
}

// DigestBody formats the plain text body of a risk digest. LOW risk leases are left out.
func DigestBody(report *models.ForecastReport) string {
	var b strings.Builder
	rs := report.RiskSummary

	b.WriteString("Hello,\n\n")
	fmt.Fprintf(&b, "Revenue expected next month: %.2f\n", report.NextMonth)
	fmt.Fprintf(&b, "Revenue expected next quarter: %.2f\n", report.NextQuarter)
	fmt.Fprintf(&b, "Monthly rent at risk: %.2f (high %.2f, medium %.2f)\n\n",
		rs.TotalAtRiskRevenue, rs.HighRevenue, rs.MediumRevenue)

	listed := 0
	for _, a := range report.RiskAssessments {
		if a.RiskLevel == models.RiskLow {
			continue
		}
		if listed == 0 {
			b.WriteString("Leases needing retention follow-up:\n")
		}
		listed++
		fmt.Fprintf(&b, "  lease %d: %s risk, score %d, %s, %d overdue invoice(s), rent %.2f\n",
			a.LeaseID, a.RiskLevel, a.RiskScore, expiryText(a.DaysUntilExpiry), a.OverdueInvoiceCount, a.MonthlyRent)
	}
	if listed == 0 {
		b.WriteString("No leases are currently at high or medium risk.\n")
	}

	b.WriteString("\nBest regards,\nRental Analytics")
	return b.String()
}

func expiryText(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("expired %d day(s) ago", -days)
	case days == 0:
		return "expires today"
	default:
		return fmt.Sprintf("expires in %d day(s)", days)
	}
}
