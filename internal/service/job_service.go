package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/gigledger/internal/repository"
)

// JobService executes the job payment: debit the client, credit the
// contractor and flip the paid flag, all inside one transaction.
type JobService struct {
	ledger *repository.LedgerRepository
}

func NewJobService(ledger *repository.LedgerRepository) *JobService {
	return &JobService{ledger: ledger}
}

// Pay marks the job paid and moves its price from the client to the
// contractor. The job, its contract and both profiles stay locked for
// the duration of the transaction, so a concurrent attempt on the same
// job either waits and then misses the unpaid predicate, or never sees
// the row at all. Only the contract's client may pay; anyone else gets
// the same not-found a wrong job id would.
func (s *JobService) Pay(ctx context.Context, jobID, callerID uuid.UUID) error {
	if jobID == uuid.Nil {
		return fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}

	return s.ledger.Transaction(ctx, func(tx *repository.LedgerRepository) error {
		job, err := tx.GetUnpaidJobForUpdate(ctx, jobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		contract, err := tx.GetContractForUpdate(ctx, job.ContractID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if contract.ClientID != callerID {
			return ErrNotFound
		}

		client, err := tx.GetProfileForUpdate(ctx, contract.ClientID)
		if err != nil {
			return err
		}
		contractor, err := tx.GetProfileForUpdate(ctx, contract.ContractorID)
		if err != nil {
			return err
		}

		if client.Balance.LessThan(job.Price) {
			return ErrInsufficientBalance
		}

		if err := tx.MarkJobPaid(ctx, job.ID, time.Now().UTC()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.AdjustBalance(ctx, client.ID, job.Price.Neg()); err != nil {
			return err
		}
		return tx.AdjustBalance(ctx, contractor.ID, job.Price)
	})
}
