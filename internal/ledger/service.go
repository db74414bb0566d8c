// Package ledger implements the payment engine: client deposits under the
// outstanding-jobs limit and atomic job payments from client to contractor.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gigworks/ledgerd/internal/database"
	"github.com/gigworks/ledgerd/pkg/errors"
	"github.com/gigworks/ledgerd/pkg/metrics"
	"github.com/gigworks/ledgerd/pkg/models"
	"github.com/gigworks/ledgerd/pkg/money"
)

// Service executes ledger operations. All balance mutations happen inside
// a single store transaction holding row locks; the store's isolation is
// the only concurrency control, there is no in-process locking.
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a ledger service on the given store handle.
func NewService(logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{logger: logger, db: db}
}

// GetProfile loads a profile by id.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound.Explain("profile not found")
		}
		return nil, database.WrapError(err)
	}
	return &profile, nil
}

// Deposit adds amount to a client's balance, bounded by 25% of the total
// price of the client's unpaid jobs on in_progress contracts. The limit
// check and the balance write share one transaction so a concurrent
// payment cannot invalidate the limit between check and write.
func (s *Service) Deposit(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		metrics.DepositsProcessed.WithLabelValues("invalid").Inc()
		return decimal.Zero, errors.Invalid.Explain("amount must be positive")
	}

	start := time.Now()
	defer func() {
		metrics.LedgerTxnLatency.WithLabelValues("deposit").Observe(time.Since(start).Seconds())
	}()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		metrics.DepositsProcessed.WithLabelValues("error").Inc()
		return decimal.Zero, errors.Internal.Explain("failed to begin transaction").Wrap(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			s.logger.Error("panic during deposit", zap.String("client_id", clientID.String()), zap.Any("panic", r))
			panic(r)
		}
	}()

	var client models.Profile
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND type = ?", clientID, models.ProfileTypeClient).
		First(&client).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.DepositsProcessed.WithLabelValues("not_found").Inc()
			return decimal.Zero, errors.NotFound.Explain("client not found")
		}
		metrics.DepositsProcessed.WithLabelValues("error").Inc()
		return decimal.Zero, errors.Internal.Explain("failed to load client").Wrap(err)
	}

	outstanding, err := outstandingTotal(tx, clientID)
	if err != nil {
		tx.Rollback()
		metrics.DepositsProcessed.WithLabelValues("error").Inc()
		return decimal.Zero, err
	}

	limit := money.DepositCap(outstanding)
	if !money.AtLeast(limit, amount) {
		tx.Rollback()
		metrics.DepositsProcessed.WithLabelValues("limit_exceeded").Inc()
		return decimal.Zero, errors.Invalid.Explain("deposit amount exceeds the allowed limit of %s", money.Format(limit))
	}

	client.Balance = money.Add(client.Balance, amount)
	client.UpdatedAt = time.Now()
	if err := tx.Save(&client).Error; err != nil {
		tx.Rollback()
		metrics.DepositsProcessed.WithLabelValues("error").Inc()
		return decimal.Zero, errors.Internal.Explain("failed to save balance").Wrap(err)
	}

	if err := tx.Commit().Error; err != nil {
		metrics.DepositsProcessed.WithLabelValues("error").Inc()
		return decimal.Zero, errors.Internal.Explain("failed to commit deposit").Wrap(err)
	}

	metrics.DepositsProcessed.WithLabelValues("deposited").Inc()
	s.logger.Info("deposit accepted",
		zap.String("client_id", clientID.String()),
		zap.String("amount", money.Format(amount)),
		zap.String("balance", money.Format(client.Balance)))

	return client.Balance, nil
}

// PayJob transfers a job's price from the owning contract's client to its
// contractor and marks the job paid, all in one transaction. The lookup is
// constrained to unpaid jobs on in_progress contracts and the job row is
// locked through commit, so of two concurrent calls on the same job exactly
// one commits; the other observes paid = true and gets NotFound.
func (s *Service) PayJob(ctx context.Context, jobID, callerID uuid.UUID) (*models.Job, error) {
	start := time.Now()
	defer func() {
		metrics.LedgerTxnLatency.WithLabelValues("pay").Observe(time.Since(start).Seconds())
	}()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		metrics.PaymentsProcessed.WithLabelValues("error").Inc()
		return nil, errors.Internal.Explain("failed to begin transaction").Wrap(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			s.logger.Error("panic during payment", zap.String("job_id", jobID.String()), zap.Any("panic", r))
			panic(r)
		}
	}()

	var job models.Job
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "jobs"}}).
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("jobs.id = ? AND jobs.paid = ? AND contracts.status = ?", jobID, false, models.ContractStatusInProgress).
		First(&job).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.PaymentsProcessed.WithLabelValues("not_found").Inc()
			return nil, errors.NotFound.Explain("job not found or already paid")
		}
		metrics.PaymentsProcessed.WithLabelValues("error").Inc()
		return nil, errors.Internal.Explain("failed to load job").Wrap(err)
	}

	var contract models.Contract
	if err := tx.First(&contract, "id = ?", job.ContractID).Error; err != nil {
		tx.Rollback()
		metrics.PaymentsProcessed.WithLabelValues("error").Inc()
		return nil, errors.Internal.Explain("failed to load contract").Wrap(err)
	}

	if callerID != contract.ClientID {
		tx.Rollback()
		metrics.PaymentsProcessed.WithLabelValues("forbidden").Inc()
		return nil, errors.Forbidden.Explain("only the client can pay for the job")
	}

	client, contractor, err := lockParties(tx, contract)
	if err != nil {
		tx.Rollback()
		metrics.PaymentsProcessed.WithLabelValues("error").Inc()
		return nil, err
	}

	if !money.AtLeast(client.Balance, job.Price) {
		tx.Rollback()
		metrics.PaymentsProcessed.WithLabelValues("insufficient_funds").Inc()
		return nil, errors.Invalid.Explain("insufficient balance")
	}

	now := time.Now()
	client.Balance = money.Sub(client.Balance, job.Price)
	client.UpdatedAt = now
	contractor.Balance = money.Add(contractor.Balance, job.Price)
	contractor.UpdatedAt = now
	job.Paid = true
	job.PaymentDate = &now
	job.UpdatedAt = now

	for _, row := range []any{client, contractor, &job} {
		if err := tx.Save(row).Error; err != nil {
			tx.Rollback()
			metrics.PaymentsProcessed.WithLabelValues("error").Inc()
			return nil, errors.Internal.Explain("failed to persist payment").Wrap(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		metrics.PaymentsProcessed.WithLabelValues("error").Inc()
		return nil, errors.Internal.Explain("failed to commit payment").Wrap(err)
	}

	metrics.PaymentsProcessed.WithLabelValues("paid").Inc()
	s.logger.Info("job paid",
		zap.String("job_id", job.ID.String()),
		zap.String("client_id", client.ID.String()),
		zap.String("contractor_id", contractor.ID.String()),
		zap.String("price", money.Format(job.Price)))

	contract.Client = client
	contract.Contractor = contractor
	job.Contract = &contract
	return &job, nil
}

// UnpaidJobs lists unpaid jobs on in_progress contracts where the profile
// is either party. Read-only.
func (s *Service) UnpaidJobs(ctx context.Context, profileID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("jobs.paid = ?", false).
		Where("contracts.status = ?", models.ContractStatusInProgress).
		Where("contracts.client_id = ? OR contracts.contractor_id = ?", profileID, profileID).
		Find(&jobs).Error; err != nil {
		return nil, errors.Internal.Explain("failed to list unpaid jobs").Wrap(err)
	}
	return jobs, nil
}

// outstandingTotal sums the price of a client's unpaid jobs on in_progress
// contracts inside the caller's transaction. The sum runs over exact
// decimals in application code rather than SQL SUM so no driver ever
// coerces an amount through a float.
func outstandingTotal(tx *gorm.DB, clientID uuid.UUID) (decimal.Decimal, error) {
	var jobs []models.Job
	if err := tx.
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("jobs.paid = ? AND contracts.client_id = ? AND contracts.status = ?", false, clientID, models.ContractStatusInProgress).
		Find(&jobs).Error; err != nil {
		return decimal.Zero, errors.Internal.Explain("failed to sum unpaid jobs").Wrap(err)
	}

	total := decimal.Zero
	for _, j := range jobs {
		total = money.Add(total, j.Price)
	}
	return total, nil
}

// lockParties acquires FOR UPDATE locks on both contract parties in a
// consistent id order so two payments touching the same profiles cannot
// deadlock, and returns them as (client, contractor).
func lockParties(tx *gorm.DB, contract models.Contract) (*models.Profile, *models.Profile, error) {
	first, second := contract.ClientID, contract.ContractorID
	if second.String() < first.String() {
		first, second = second, first
	}

	load := func(id uuid.UUID) (*models.Profile, error) {
		var p models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", id).Error; err != nil {
			return nil, errors.Internal.Explain("failed to lock profile").Wrap(err)
		}
		return &p, nil
	}

	a, err := load(first)
	if err != nil {
		return nil, nil, err
	}
	b, err := load(second)
	if err != nil {
		return nil, nil, err
	}

	if a.ID == contract.ClientID {
		return a, b, nil
	}
	return b, a, nil
}
