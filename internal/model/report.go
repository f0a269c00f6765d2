package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionEarnings is one row of the earnings-by-profession report:
// the sum and count of jobs paid to contractors of that profession
// inside the requested window.
type ProfessionEarnings struct {
	Profession       string          `json:"profession"`
	TotalEarned      decimal.Decimal `json:"totalEarned"`
	AmountOfJobsPaid int64           `json:"amountOfJobsPaid"`
}

// ClientSpend is one row of the top-paying-clients report.
type ClientSpend struct {
	ID        uuid.UUID       `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
}

// EarningsReport carries a rendered window alongside its rows for the
// file exports.
type EarningsReport struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Rows        []ProfessionEarnings
}
