package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-analytics/internal/models"
)

// Notifier delivers a computed report to people
type Notifier interface {
	SendRiskDigest(to []string, report *models.ForecastReport) error
}

// DigestScheduler periodically mails the vacancy risk digest
type DigestScheduler struct {
	svc        *Service
	notifier   Notifier
	recipients []string
	cron       *cron.Cron
	log        *logrus.Logger
	now        func() time.Time
}

// NewDigestScheduler creates a digest scheduler for the configured recipients
func NewDigestScheduler(svc *Service, notifier Notifier, log *logrus.Logger) *DigestScheduler {
	return &DigestScheduler{
		svc:        svc,
		notifier:   notifier,
		recipients: svc.config.DigestRecipients,
		cron:       cron.New(),
		log:        log,
		now:        time.Now,
	}
}

// Start registers the digest job on a standard five-field cron schedule and starts the scheduler
func (d *DigestScheduler) Start(schedule string) error {
	if _, err := d.cron.AddFunc(schedule, d.run); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}

	d.cron.Start()
	d.log.WithField("schedule", schedule).Info("Risk digest scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running digest to finish
func (d *DigestScheduler) Stop() {
	<-d.cron.Stop().Done()
	d.log.Info("Risk digest scheduler stopped")
}

// RunDigest computes the report as of now and mails it. Without recipients nothing is computed.
func (d *DigestScheduler) RunDigest(ctx context.Context, now time.Time) error {
	if len(d.recipients) == 0 {
		d.log.Info("No digest recipients configured, skipping risk digest")
		return nil
	}

	report, err := d.svc.ForecastReport(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to compute report for digest: %w", err)
	}
	if err := d.notifier.SendRiskDigest(d.recipients, report); err != nil {
		return err
	}

	d.log.WithFields(logrus.Fields{
		"recipients":  len(d.recipients),
		"high_risk":   report.RiskSummary.HighCount,
		"medium_risk": report.RiskSummary.MediumCount,
	}).Info("Risk digest sent")
	return nil
}

func (d *DigestScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := d.RunDigest(ctx, d.now()); err != nil {
		d.log.Errorf("Scheduled risk digest failed: %v", err)
	}
}
