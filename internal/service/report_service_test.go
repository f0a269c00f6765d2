package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/gigledger/internal/excel"
	"github.com/nurpe/gigledger/internal/model"
	"github.com/nurpe/gigledger/internal/pdf"
	"github.com/nurpe/gigledger/internal/repository"
)

func newReportService(db *gorm.DB) *ReportService {
	return NewReportService(repository.NewReportRepository(db), excel.NewGenerator(), pdf.NewGenerator())
}

func seedPaidJobs(t *testing.T, db *gorm.DB) {
	t.Helper()
	alice := seedProfile(t, db, model.ProfileTypeClient, "manager", 0)
	bob := seedProfile(t, db, model.ProfileTypeClient, "manager", 0)
	carol := seedProfile(t, db, model.ProfileTypeClient, "manager", 0)
	plumber := seedProfile(t, db, model.ProfileTypeContractor, "plumber", 0)

	paidAt := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	seedJob(t, db, seedContract(t, db, alice, plumber, model.ContractStatusInProgress), 500, &paidAt)
	seedJob(t, db, seedContract(t, db, bob, plumber, model.ContractStatusInProgress), 300, &paidAt)
	seedJob(t, db, seedContract(t, db, carol, plumber, model.ContractStatusInProgress), 100, &paidAt)
}

func window() (time.Time, time.Time) {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
}

func TestBestClientsDefaultLimit(t *testing.T) {
	db := newTestDB(t)
	reports := newReportService(db)
	seedPaidJobs(t, db)
	start, end := window()

	rows, err := reports.BestClients(context.Background(), start, end, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want default limit of 2", len(rows))
	}
}

func TestReportWindowValidation(t *testing.T) {
	db := newTestDB(t)
	reports := newReportService(db)
	ctx := context.Background()
	start, end := window()

	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"missing start", time.Time{}, end},
		{"missing end", start, time.Time{}},
		{"inverted", end, start},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := reports.BestProfession(ctx, tc.start, tc.end); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("best profession: err = %v, want invalid input", err)
			}
			if _, err := reports.BestClients(ctx, tc.start, tc.end, 5); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("best clients: err = %v, want invalid input", err)
			}
		})
	}
}

func TestExportBestProfession(t *testing.T) {
	db := newTestDB(t)
	reports := newReportService(db)
	seedPaidJobs(t, db)
	ctx := context.Background()
	start, end := window()

	xlsx, err := reports.ExportBestProfession(ctx, start, end, "xlsx")
	if err != nil {
		t.Fatalf("xlsx export: %v", err)
	}
	if len(xlsx.Content) == 0 {
		t.Error("xlsx content is empty")
	}
	if xlsx.FileName != "earnings-by-profession-20240101-20240131.xlsx" {
		t.Errorf("xlsx filename = %q", xlsx.FileName)
	}

	pdfResult, err := reports.ExportBestProfession(ctx, start, end, "pdf")
	if err != nil {
		t.Fatalf("pdf export: %v", err)
	}
	if !bytes.HasPrefix(pdfResult.Content, []byte("%PDF")) {
		t.Error("pdf content should start with %PDF")
	}

	if _, err := reports.ExportBestProfession(ctx, start, end, "csv"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown format: err = %v, want invalid input", err)
	}
}
