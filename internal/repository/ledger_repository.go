package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/gigledger/internal/model"
)

// LedgerRepository is the single source of truth for profiles,
// contracts and jobs. All money movement goes through Transaction so
// that every mutation either commits as a whole or not at all.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Transaction runs fn against a transactional copy of the repository.
// Any error returned by fn rolls the whole transaction back.
func (r *LedgerRepository) Transaction(ctx context.Context, fn func(tx *LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LedgerRepository{db: tx})
	})
}

// forUpdate adds a SELECT ... FOR UPDATE row lock. The sqlite dialect
// used by the tests has no row locks and serializes writers itself.
func (r *LedgerRepository) forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *LedgerRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileForUpdate locks the profile row for the rest of the
// enclosing transaction.
func (r *LedgerRepository) GetProfileForUpdate(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUnpaidJobForUpdate loads and locks a job that has not been paid
// yet. A job that was already paid (or never existed) surfaces as
// gorm.ErrRecordNotFound, which is what serializes concurrent payment
// attempts: the second transaction finds no matching row.
func (r *LedgerRepository) GetUnpaidJobForUpdate(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	err := r.forUpdate(r.db.WithContext(ctx)).
		Where("id = ? AND (paid IS NULL OR paid = ?)", id, false).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetContractForUpdate locks the contract row for the rest of the
// enclosing transaction.
func (r *LedgerRepository) GetContractForUpdate(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := r.forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

// GetContractForProfile returns the contract only when the given
// profile is one of its two parties.
func (r *LedgerRepository) GetContractForProfile(ctx context.Context, id, profileID uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).
		Where("id = ? AND (client_id = ? OR contractor_id = ?)", id, profileID, profileID).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// ListActiveContracts returns every non-terminated contract with both
// parties set.
func (r *LedgerRepository) ListActiveContracts(ctx context.Context) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, terms, status, client_id, contractor_id
		FROM contracts
		WHERE status <> ?
			AND client_id IS NOT NULL
			AND contractor_id IS NOT NULL
		ORDER BY id
	`, model.ContractStatusTerminated).Scan(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListContractsForProfile returns the non-terminated contracts where
// the profile is client or contractor.
func (r *LedgerRepository) ListContractsForProfile(ctx context.Context, profileID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, terms, status, client_id, contractor_id
		FROM contracts
		WHERE status <> ?
			AND (client_id = ? OR contractor_id = ?)
		ORDER BY id
	`, model.ContractStatusTerminated, profileID, profileID).Scan(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListUnpaidJobsForProfile returns jobs whose paid flag was never set,
// under active contracts the profile is a party to.
func (r *LedgerRepository) ListUnpaidJobsForProfile(ctx context.Context, profileID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).Raw(`
		SELECT j.id, j.description, j.price, j.paid, j.payment_date, j.contract_id
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid IS NULL
			AND c.status <> ?
			AND (c.client_id = ? OR c.contractor_id = ?)
		ORDER BY j.id
	`, model.ContractStatusTerminated, profileID, profileID).Scan(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// MarkJobPaid flips the one-way paid transition. The unpaid predicate
// is re-checked in the UPDATE itself so a lost race surfaces as zero
// affected rows instead of a double payment.
func (r *LedgerRepository) MarkJobPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE jobs
		SET paid = ?, payment_date = ?
		WHERE id = ? AND (paid IS NULL OR paid = ?)
	`, true, paidAt, id, false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustBalance atomically adds delta (negative for a debit) to the
// profile balance.
func (r *LedgerRepository) AdjustBalance(ctx context.Context, profileID uuid.UUID, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", profileID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumOutstanding totals the prices of every job under the client's
// non-terminated contracts, paid or not. This is the reserve the
// deposit cap is measured against.
func (r *LedgerRepository) SumOutstanding(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(j.price), 0) AS total
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.client_id = ? AND c.status <> ?
	`, clientID, model.ContractStatusTerminated).Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
