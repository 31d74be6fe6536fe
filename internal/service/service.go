package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/rental-analytics/internal/analytics"
	"github.com/Dan9191/rental-analytics/internal/config"
	"github.com/Dan9191/rental-analytics/internal/models"
	"github.com/Dan9191/rental-analytics/internal/repository"
	"github.com/Dan9191/rental-analytics/internal/utils"
)

// ErrInvalidCredentials is returned by Login for unknown users and wrong passwords
var ErrInvalidCredentials = errors.New("invalid credentials")

// Store is the read-only data source the service pulls snapshots from
type Store interface {
	MonthlyPaidRevenue(ctx context.Context, periods []models.Period) ([]models.RevenuePoint, error)
	ActiveLeases(ctx context.Context) ([]models.LeaseSnapshot, error)
	ActiveRentTotal(ctx context.Context) (float64, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service handles business logic
type Service struct {
	repo   Store
	log    *logrus.Logger
	config *config.Config

	mu          sync.Mutex
	cacheKey    string
	cacheReport *models.ForecastReport
}

// NewService initializes a new service
func NewService(repo Store, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, log: log, config: cfg}
}

// ForecastReport fetches the current billing and lease snapshot and computes the analytics report as of now's UTC day.
// Nothing is computed when any part of the snapshot cannot be read.
func (s *Service) ForecastReport(ctx context.Context, now time.Time) (*models.ForecastReport, error) {
	day := now.UTC().Truncate(24 * time.Hour)

	history, err := s.repo.MonthlyPaidRevenue(ctx, TrailingPeriods(day, s.config.HistoryMonths))
	if err != nil {
		return nil, err
	}
	leases, err := s.repo.ActiveLeases(ctx)
	if err != nil {
		return nil, err
	}
	rentTotal, err := s.repo.ActiveRentTotal(ctx)
	if err != nil {
		return nil, err
	}
	baseline := rentTotal * s.config.UtilityUplift
	horizon := s.config.ForecastHorizon

	key, err := utils.SnapshotDigest(s.config.HMACSecret, history, leases, day, horizon, baseline)
	if err != nil {
		return nil, fmt.Errorf("failed to digest snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cacheReport != nil && s.cacheKey == key {
		s.log.WithField("snapshot", key[:12]).Debug("Serving cached forecast report")
		return s.cacheReport, nil
	}

	report := analytics.ComputeForecastReport(history, leases, day, horizon, baseline)
	s.cacheKey = key
	s.cacheReport = &report

	s.log.WithFields(logrus.Fields{
		"history_months":  len(history),
		"active_leases":   len(leases),
		"at_risk_leases":  len(report.RiskAssessments),
		"next_month":      report.NextMonth,
		"growth_rate_pct": report.GrowthRatePercent,
	}).Info("Forecast report computed")
	return &report, nil
}

// Login authenticates an operator and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	// Generate JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// TrailingPeriods returns the months full calendar months before now, oldest first
func TrailingPeriods(now time.Time, months int) []models.Period {
	if months <= 0 {
		return nil
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -months, 0)
	p := models.Period{Month: int(first.Month()), Year: first.Year()}

	periods := make([]models.Period, 0, months)
	for i := 0; i < months; i++ {
		periods = append(periods, p)
		p = p.Next()
	}
	return periods
}
