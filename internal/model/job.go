package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Job is a billable unit of work under a contract. Paid is tri-state:
// nil means never touched, false/true are explicit. A job moves to
// paid at most once; PaymentDate is set in the same write.
type Job struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Description string          `gorm:"column:description" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)" json:"price"`
	Paid        *bool           `gorm:"column:paid" json:"paid"`
	PaymentDate *time.Time      `gorm:"column:payment_date" json:"payment_date"`
	ContractID  uuid.UUID       `gorm:"column:contract_id;type:uuid" json:"contract_id"`
}

func (Job) TableName() string { return "jobs" }

// IsPaid reports whether the one-way paid transition has happened.
func (j Job) IsPaid() bool { return j.Paid != nil && *j.Paid }
