package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gigworks/ledgerd/pkg/models"
)

// Seed loads a small demo data set for local runs. It is a no-op when
// profiles already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Profile{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing profiles: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()

	clientA := models.Profile{ID: uuid.New(), FirstName: "Ada", LastName: "Osei", Profession: "founder", Type: models.ProfileTypeClient, Balance: decimal.RequireFromString("1150.00"), CreatedAt: now, UpdatedAt: now}
	clientB := models.Profile{ID: uuid.New(), FirstName: "Nora", LastName: "Lindqvist", Profession: "producer", Type: models.ProfileTypeClient, Balance: decimal.RequireFromString("231.11"), CreatedAt: now, UpdatedAt: now}
	contractorA := models.Profile{ID: uuid.New(), FirstName: "Marcus", LastName: "Webb", Profession: "programmer", Type: models.ProfileTypeContractor, Balance: decimal.RequireFromString("64.00"), CreatedAt: now, UpdatedAt: now}
	contractorB := models.Profile{ID: uuid.New(), FirstName: "Ines", LastName: "Ferreira", Profession: "musician", Type: models.ProfileTypeContractor, Balance: decimal.RequireFromString("1214.00"), CreatedAt: now, UpdatedAt: now}

	contracts := []models.Contract{
		{ID: uuid.New(), Terms: "build the storefront", Status: models.ContractStatusInProgress, ClientID: clientA.ID, ContractorID: contractorA.ID, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Terms: "score the launch video", Status: models.ContractStatusInProgress, ClientID: clientB.ID, ContractorID: contractorB.ID, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Terms: "legacy migration", Status: models.ContractStatusTerminated, ClientID: clientA.ID, ContractorID: contractorB.ID, CreatedAt: now, UpdatedAt: now},
	}

	jobs := []models.Job{
		{ID: uuid.New(), ContractID: contracts[0].ID, Description: "checkout flow", Price: decimal.RequireFromString("200.00"), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), ContractID: contracts[0].ID, Description: "admin panel", Price: decimal.RequireFromString("200.00"), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), ContractID: contracts[1].ID, Description: "intro theme", Price: decimal.RequireFromString("121.00"), CreatedAt: now, UpdatedAt: now},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, p := range []models.Profile{clientA, clientB, contractorA, contractorB} {
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("failed to seed profile: %w", err)
			}
		}
		for _, c := range contracts {
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed contract: %w", err)
			}
		}
		for _, j := range jobs {
			if err := tx.Create(&j).Error; err != nil {
				return fmt.Errorf("failed to seed job: %w", err)
			}
		}
		return nil
	})
}
