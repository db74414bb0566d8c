package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile types
const (
	ProfileTypeClient     = "client"
	ProfileTypeContractor = "contractor"
)

// Contract statuses
const (
	ContractStatusNew        = "new"
	ContractStatusInProgress = "in_progress"
	ContractStatusTerminated = "terminated"
)

// Profile represents an account holding a monetary balance, either a client
// commissioning work or a contractor performing it.
type Profile struct {
	ID         uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	FirstName  string          `json:"first_name" validate:"required,min=1,max=50"`
	LastName   string          `json:"last_name" validate:"required,min=1,max=50"`
	Profession string          `json:"profession" validate:"required,max=100"`
	Type       string          `json:"type" gorm:"index" validate:"required,oneof=client contractor"`
	Balance    decimal.Decimal `json:"balance" gorm:"type:numeric(20,2)"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// FullName returns the profile's display name.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Contract is an agreement between a client and a contractor. Jobs under a
// contract are payable only while the contract is in_progress.
type Contract struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Terms        string    `json:"terms" gorm:"type:text" validate:"required"`
	Status       string    `json:"status" gorm:"index" validate:"required,oneof=new in_progress terminated"`
	ClientID     uuid.UUID `json:"client_id" gorm:"type:uuid;index" validate:"required,uuid"`
	ContractorID uuid.UUID `json:"contractor_id" gorm:"type:uuid;index" validate:"required,uuid"`
	Client       *Profile  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Contractor   *Profile  `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Job is a unit of billable work under a contract. Paid transitions from
// false to true exactly once; PaymentDate is set at that commit and never
// changes afterwards.
type Job struct {
	ID          uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	ContractID  uuid.UUID       `json:"contract_id" gorm:"type:uuid;index" validate:"required,uuid"`
	Contract    *Contract       `json:"contract,omitempty" gorm:"foreignKey:ContractID"`
	Description string          `json:"description" validate:"required,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(20,2)" validate:"required"`
	Paid        bool            `json:"paid" gorm:"not null;default:false;index"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
