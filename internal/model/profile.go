package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProfileType string

const (
	ProfileTypeClient     ProfileType = "client"
	ProfileTypeContractor ProfileType = "contractor"
)

// Profile is a client or contractor account. Balance is a fixed-point
// decimal with no enforced floor; only the payment and deposit paths
// mutate it.
type Profile struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FirstName  string          `gorm:"column:first_name" json:"first_name"`
	LastName   string          `gorm:"column:last_name" json:"last_name"`
	Profession string          `gorm:"column:profession" json:"profession"`
	Balance    decimal.Decimal `gorm:"column:balance;type:numeric(12,2)" json:"balance"`
	Type       ProfileType     `gorm:"column:type" json:"type"`
}

func (Profile) TableName() string { return "profiles" }
