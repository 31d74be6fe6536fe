package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/rental-analytics/internal/models"
)

var (
	// ErrDataUnavailable marks a failed read from the billing or lease store
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
)

// Repository provides read-only access to billing and lease data
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// MonthlyPaidRevenue returns the total of paid payments for each requested period, in the given order.
// Periods without payments yield a zero amount.
func (r *Repository) MonthlyPaidRevenue(ctx context.Context, periods []models.Period) ([]models.RevenuePoint, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM rental.payments
		WHERE status = 'paid'
		  AND EXTRACT(MONTH FROM paid_at) = $1
		  AND EXTRACT(YEAR FROM paid_at) = $2`

	points := make([]models.RevenuePoint, 0, len(periods))
	for _, p := range periods {
		var total decimal.Decimal
		if err := r.db.QueryRowContext(ctx, query, p.Month, p.Year).Scan(&total); err != nil {
			return nil, fmt.Errorf("%w: failed to sum revenue for %02d/%d: %w", ErrDataUnavailable, p.Month, p.Year, err)
		}
		points = append(points, models.RevenuePoint{
			Month:  p.Month,
			Year:   p.Year,
			Amount: total.InexactFloat64(),
		})
	}
	return points, nil
}

// ActiveLeases returns every active lease annotated with its overdue invoice count
func (r *Repository) ActiveLeases(ctx context.Context) ([]models.LeaseSnapshot, error) {
	query := `
		SELECT l.id, l.start_date, l.end_date, l.monthly_rent,
			(SELECT COUNT(*) FROM rental.invoices i WHERE i.lease_id = l.id AND i.status = 'overdue')
		FROM rental.leases l
		WHERE l.status = 'active'
		ORDER BY l.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query active leases: %w", ErrDataUnavailable, err)
	}
	defer rows.Close()

	var leases []models.LeaseSnapshot
	for rows.Next() {
		var (
			lease models.LeaseSnapshot
			end   sql.NullTime
			rent  decimal.Decimal
		)
		if err := rows.Scan(&lease.LeaseID, &lease.StartDate, &end, &rent, &lease.OverdueInvoiceCount); err != nil {
			return nil, fmt.Errorf("%w: failed to scan lease: %w", ErrDataUnavailable, err)
		}
		if end.Valid {
			endDate := end.Time
			lease.EndDate = &endDate
		}
		lease.MonthlyRent = rent.InexactFloat64()
		leases = append(leases, lease)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read active leases: %w", ErrDataUnavailable, err)
	}
	return leases, nil
}

// ActiveRentTotal returns the sum of monthly rent over active leases
func (r *Repository) ActiveRentTotal(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(SUM(monthly_rent), 0)
		FROM rental.leases
		WHERE status = 'active'`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: failed to sum active rent: %w", ErrDataUnavailable, err)
	}
	return total.InexactFloat64(), nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM rental.users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find user: %w", ErrDataUnavailable, err)
	}
	return user, nil
}
