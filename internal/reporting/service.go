// Package reporting answers read-only aggregation queries over paid jobs.
// Queries run at the store's default read consistency; no locks are taken.
package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gigworks/ledgerd/pkg/errors"
	"github.com/gigworks/ledgerd/pkg/models"
)

// DefaultClientLimit bounds BestClients when the caller gives no limit.
const DefaultClientLimit = 2

// ProfessionEarnings is the best-profession result row.
type ProfessionEarnings struct {
	Profession  string          `json:"profession"`
	TotalEarned decimal.Decimal `json:"total_earned"`
}

// ClientSpend is one best-clients result row.
type ClientSpend struct {
	ID        uuid.UUID       `json:"id"`
	FullName  string          `json:"full_name"`
	TotalPaid decimal.Decimal `json:"paid"`
}

// Service runs the reporting queries.
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a reporting service.
func NewService(logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{logger: logger, db: db}
}

// BestProfession returns the profession that earned the most from jobs
// paid within [start, end]. Ties resolve to the first-seen group.
func (s *Service) BestProfession(ctx context.Context, start, end time.Time) (*ProfessionEarnings, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	var rows []ProfessionEarnings
	if err := s.db.WithContext(ctx).Model(&models.Job{}).
		Select("profiles.profession AS profession, SUM(jobs.price) AS total_earned").
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Joins("JOIN profiles ON profiles.id = contracts.contractor_id").
		Where("jobs.paid = ? AND jobs.payment_date BETWEEN ? AND ?", true, start, end).
		Group("profiles.profession").
		Order("total_earned DESC").
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, errors.Internal.Explain("failed to aggregate professions").Wrap(err)
	}

	if len(rows) == 0 {
		return nil, errors.NotFound.Explain("no profession found in the given date range")
	}
	return &rows[0], nil
}

// BestClients returns the clients that paid the most for jobs within
// [start, end], descending, truncated to limit (default 2 when <= 0).
func (s *Service) BestClients(ctx context.Context, start, end time.Time, limit int) ([]ClientSpend, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultClientLimit
	}

	var rows []ClientSpend
	if err := s.db.WithContext(ctx).Model(&models.Job{}).
		Select("profiles.id AS id, profiles.first_name || ' ' || profiles.last_name AS full_name, SUM(jobs.price) AS total_paid").
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Joins("JOIN profiles ON profiles.id = contracts.client_id").
		Where("jobs.paid = ? AND jobs.payment_date BETWEEN ? AND ?", true, start, end).
		Group("profiles.id, profiles.first_name, profiles.last_name").
		Order("total_paid DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Internal.Explain("failed to aggregate clients").Wrap(err)
	}

	if len(rows) == 0 {
		return nil, errors.NotFound.Explain("no clients found in the given date range")
	}
	return rows, nil
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.Invalid.Explain("start and end dates are required")
	}
	if start.After(end) {
		return errors.Invalid.Explain("start date must not be after end date")
	}
	return nil
}
