package contracts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gigworks/ledgerd/internal/database"
	"github.com/gigworks/ledgerd/pkg/errors"
	"github.com/gigworks/ledgerd/pkg/models"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test db")
	require.NoError(t, database.Migrate(db))
	return NewService(zap.NewNop(), db)
}

func addProfile(t *testing.T, db *gorm.DB, profileType string) *models.Profile {
	t.Helper()
	p := &models.Profile{
		ID:         uuid.New(),
		FirstName:  "Test",
		LastName:   profileType,
		Profession: "tester",
		Type:       profileType,
		Balance:    decimal.Zero,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func addContract(t *testing.T, db *gorm.DB, client, contractor *models.Profile, status string) *models.Contract {
	t.Helper()
	c := &models.Contract{
		ID:           uuid.New(),
		Terms:        "work",
		Status:       status,
		ClientID:     client.ID,
		ContractorID: contractor.ID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestGetContractVisibleToPartiesOnly(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	client := addProfile(t, s.db, models.ProfileTypeClient)
	contractor := addProfile(t, s.db, models.ProfileTypeContractor)
	outsider := addProfile(t, s.db, models.ProfileTypeClient)
	contract := addContract(t, s.db, client, contractor, models.ContractStatusInProgress)

	for _, id := range []uuid.UUID{client.ID, contractor.ID} {
		got, err := s.GetContract(ctx, contract.ID, id)
		require.NoError(t, err)
		assert.Equal(t, contract.ID, got.ID)
	}

	_, err := s.GetContract(ctx, contract.ID, outsider.ID)
	assert.True(t, errors.Is(err, errors.NotFound), "outsider must get NotFound, got %v", err)

	_, err = s.GetContract(ctx, uuid.New(), client.ID)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestListContractsSkipsTerminated(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	client := addProfile(t, s.db, models.ProfileTypeClient)
	contractor := addProfile(t, s.db, models.ProfileTypeContractor)
	other := addProfile(t, s.db, models.ProfileTypeClient)

	inProgress := addContract(t, s.db, client, contractor, models.ContractStatusInProgress)
	fresh := addContract(t, s.db, client, contractor, models.ContractStatusNew)
	addContract(t, s.db, client, contractor, models.ContractStatusTerminated)
	addContract(t, s.db, other, contractor, models.ContractStatusInProgress)

	got, err := s.ListContracts(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	ids := []uuid.UUID{got[0].ID, got[1].ID}
	assert.Contains(t, ids, inProgress.ID)
	assert.Contains(t, ids, fresh.ID)
}
