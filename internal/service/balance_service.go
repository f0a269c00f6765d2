package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/gigledger/internal/config"
	"github.com/nurpe/gigledger/internal/repository"
)

var oneHundred = decimal.NewFromInt(100)

// BalanceService executes deposits into a client balance, capped
// relative to the caller's outstanding job obligations.
type BalanceService struct {
	ledger     *repository.LedgerRepository
	capPercent decimal.Decimal
}

func NewBalanceService(ledger *repository.LedgerRepository, cfg *config.Config) *BalanceService {
	return &BalanceService{
		ledger:     ledger,
		capPercent: decimal.NewFromInt(int64(cfg.Ledger.DepositCapPercent)),
	}
}

// Deposit moves amount from the caller's balance to the target's. The
// caller may not deposit more than the configured percentage of the
// total price of jobs under their non-terminated contracts, paid or
// not. The caller row is locked before the outstanding sum is read so
// two concurrent deposits cannot both pass the cap against the same
// snapshot.
func (s *BalanceService) Deposit(ctx context.Context, callerID, targetID uuid.UUID, amount decimal.Decimal) error {
	if targetID == uuid.Nil {
		return fmt.Errorf("%w: target profile id is required", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	return s.ledger.Transaction(ctx, func(tx *repository.LedgerRepository) error {
		if _, err := tx.GetProfileForUpdate(ctx, callerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if _, err := tx.GetProfile(ctx, targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		outstanding, err := tx.SumOutstanding(ctx, callerID)
		if err != nil {
			return err
		}

		// With nothing outstanding the ratio is undefined, so no
		// deposit is permitted at all.
		if !outstanding.IsPositive() {
			return ErrDepositThreshold
		}
		// (100 * amount) / outstanding > cap, written without the
		// division so the boundary compares exactly.
		if amount.Mul(oneHundred).GreaterThan(outstanding.Mul(s.capPercent)) {
			return ErrDepositThreshold
		}

		if err := tx.AdjustBalance(ctx, callerID, amount.Neg()); err != nil {
			return err
		}
		return tx.AdjustBalance(ctx, targetID, amount)
	})
}
