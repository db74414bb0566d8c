// Package contracts serves read-only contract lookups for a profile.
package contracts

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gigworks/ledgerd/internal/database"
	"github.com/gigworks/ledgerd/pkg/errors"
	"github.com/gigworks/ledgerd/pkg/models"
)

// Service runs contract queries.
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a contracts service.
func NewService(logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{logger: logger, db: db}
}

// GetContract returns the contract only when the profile is one of its
// parties; anything else is NotFound so outsiders cannot probe ids.
func (s *Service) GetContract(ctx context.Context, id, profileID uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Where("client_id = ? OR contractor_id = ?", profileID, profileID).
		First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound.Explain("contract not found")
		}
		return nil, database.WrapError(err)
	}
	return &contract, nil
}

// ListContracts returns the profile's non-terminated contracts. Listing
// keeps new contracts visible even though they are not yet payable.
func (s *Service) ListContracts(ctx context.Context, profileID uuid.UUID) ([]models.Contract, error) {
	var contracts []models.Contract
	if err := s.db.WithContext(ctx).
		Where("client_id = ? OR contractor_id = ?", profileID, profileID).
		Where("status <> ?", models.ContractStatusTerminated).
		Find(&contracts).Error; err != nil {
		return nil, errors.Internal.Explain("failed to list contracts").Wrap(err)
	}
	return contracts, nil
}
