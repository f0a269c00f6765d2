package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/gigledger/internal/model"
	"github.com/nurpe/gigledger/internal/repository"
)

// ContractService answers the contract and unpaid-job listings. All
// operations are plain reads against the ledger.
type ContractService struct {
	ledger *repository.LedgerRepository
}

func NewContractService(ledger *repository.LedgerRepository) *ContractService {
	return &ContractService{ledger: ledger}
}

// ListActive returns every non-terminated contract with both parties
// set, regardless of the caller.
func (s *ContractService) ListActive(ctx context.Context) ([]model.Contract, error) {
	return s.ledger.ListActiveContracts(ctx)
}

// ListMine returns the caller's non-terminated contracts, on either
// side of the agreement.
func (s *ContractService) ListMine(ctx context.Context, callerID uuid.UUID) ([]model.Contract, error) {
	return s.ledger.ListContractsForProfile(ctx, callerID)
}

// Get returns the contract only if the caller is its client or its
// contractor; anything else is reported as not found.
func (s *ContractService) Get(ctx context.Context, id, callerID uuid.UUID) (*model.Contract, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidInput
	}
	contract, err := s.ledger.GetContractForProfile(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

// ListUnpaidJobs returns jobs that were never paid, under active
// contracts where the caller is a party.
func (s *ContractService) ListUnpaidJobs(ctx context.Context, callerID uuid.UUID) ([]model.Job, error) {
	return s.ledger.ListUnpaidJobsForProfile(ctx, callerID)
}
