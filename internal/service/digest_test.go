package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/rental-analytics/internal/models"
	"github.com/Dan9191/rental-analytics/internal/repository"
)

type fakeNotifier struct {
	to      []string
	reports []*models.ForecastReport
	err     error
}

func (f *fakeNotifier) SendRiskDigest(to []string, report *models.ForecastReport) error {
	f.to = to
	f.reports = append(f.reports, report)
	return f.err
}

func digestService(store *fakeStore, recipients ...string) *Service {
	cfg := testConfig(3)
	cfg.DigestRecipients = recipients
	return NewService(store, quietLogger(), cfg)
}

func TestRunDigest(t *testing.T) {
	end := now.AddDate(0, 0, 10)
	store := &fakeStore{leases: []models.LeaseSnapshot{
		{LeaseID: 5, StartDate: end.AddDate(0, -1, 0), EndDate: &end, MonthlyRent: 700, OverdueInvoiceCount: 3},
	}}
	notifier := &fakeNotifier{}
	d := NewDigestScheduler(digestService(store, "ops@example.com"), notifier, quietLogger())

	require.NoError(t, d.RunDigest(context.Background(), now))
	require.Len(t, notifier.reports, 1)
	assert.Equal(t, []string{"ops@example.com"}, notifier.to)
	assert.Equal(t, 1, notifier.reports[0].RiskSummary.HighCount)
	assert.InDelta(t, 700.0, notifier.reports[0].RiskSummary.TotalAtRiskRevenue, 1e-9)
}

func TestRunDigest_NoRecipients(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	d := NewDigestScheduler(digestService(store), notifier, quietLogger())

	require.NoError(t, d.RunDigest(context.Background(), now))
	assert.Empty(t, notifier.reports)
	assert.Zero(t, store.revenueHits)
}

func TestRunDigest_Errors(t *testing.T) {
	unavailable := errors.Join(repository.ErrDataUnavailable, errors.New("db down"))
	notifier := &fakeNotifier{}
	d := NewDigestScheduler(digestService(&fakeStore{leasesErr: unavailable}, "ops@example.com"), notifier, quietLogger())

	err := d.RunDigest(context.Background(), now)
	assert.ErrorIs(t, err, repository.ErrDataUnavailable)
	assert.Empty(t, notifier.reports)

	smtpErr := errors.New("smtp down")
	notifier = &fakeNotifier{err: smtpErr}
	d = NewDigestScheduler(digestService(&fakeStore{}, "ops@example.com"), notifier, quietLogger())
	assert.ErrorIs(t, d.RunDigest(context.Background(), now), smtpErr)
}

func TestDigestScheduler_Start(t *testing.T) {
	d := NewDigestScheduler(digestService(&fakeStore{}), &fakeNotifier{}, quietLogger())

	assert.Error(t, d.Start("not a schedule"))

	require.NoError(t, d.Start("0 8 * * 1"))
	d.Stop()
}

func TestDigestScheduler_RunUsesClock(t *testing.T) {
	notifier := &fakeNotifier{}
	d := NewDigestScheduler(digestService(&fakeStore{}, "ops@example.com"), notifier, quietLogger())
	d.now = func() time.Time { return now }

	d.run()
	require.Len(t, notifier.reports, 1)
	assert.Equal(t, time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC), notifier.reports[0].GeneratedAt)
}
