package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/gigledger/internal/model"
)

// ReportRepository holds the read-only aggregation queries. Both
// windows are inclusive and evaluated against jobs.payment_date.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// EarningsByProfession ranks contractor professions by the money paid
// to them inside [start, end].
func (r *ReportRepository) EarningsByProfession(ctx context.Context, start, end time.Time) ([]model.ProfessionEarnings, error) {
	var rows []model.ProfessionEarnings
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.profession AS profession,
			SUM(j.price) AS total_earned,
			COUNT(*) AS amount_of_jobs_paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.contractor_id
		WHERE j.paid IS NOT NULL
			AND j.payment_date BETWEEN ? AND ?
		GROUP BY p.profession
		ORDER BY total_earned DESC
	`, start, end).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopPayingClients ranks clients by the money they paid for jobs
// inside [start, end], truncated to limit.
func (r *ReportRepository) TopPayingClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientSpend, error) {
	var rows []model.ClientSpend
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id AS id,
			p.first_name AS first_name,
			p.last_name AS last_name,
			SUM(j.price) AS total_paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.paid IS NOT NULL
			AND j.payment_date BETWEEN ? AND ?
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY total_paid DESC
		LIMIT ?
	`, start, end, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
