package model

import "github.com/google/uuid"

type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Contract binds exactly one client and one contractor. Both party
// references are set at creation and never change.
type Contract struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Terms        string         `gorm:"column:terms" json:"terms"`
	Status       ContractStatus `gorm:"column:status" json:"status"`
	ClientID     uuid.UUID      `gorm:"column:client_id;type:uuid" json:"client_id"`
	ContractorID uuid.UUID      `gorm:"column:contractor_id;type:uuid" json:"contractor_id"`
}

func (Contract) TableName() string { return "contracts" }
