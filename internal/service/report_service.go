package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nurpe/gigledger/internal/model"
	"github.com/nurpe/gigledger/internal/repository"
)

// defaultBestClientsLimit applies when the caller does not ask for a
// specific number of rows.
const defaultBestClientsLimit = 2

type ExcelGenerator interface {
	Generate(report model.EarningsReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(report model.EarningsReport) ([]byte, error)
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ReportService runs the read-side aggregations and renders their file
// exports.
type ReportService struct {
	reports *repository.ReportRepository
	excel   ExcelGenerator
	pdf     PDFGenerator
}

func NewReportService(reports *repository.ReportRepository, excel ExcelGenerator, pdf PDFGenerator) *ReportService {
	return &ReportService{reports: reports, excel: excel, pdf: pdf}
}

// BestProfession returns professions ranked by total earnings over the
// inclusive [start, end] window.
func (s *ReportService) BestProfession(ctx context.Context, start, end time.Time) ([]model.ProfessionEarnings, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	return s.reports.EarningsByProfession(ctx, start, end)
}

// BestClients returns the clients who paid the most over the window,
// truncated to limit (default 2 when limit is not positive).
func (s *ReportService) BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientSpend, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultBestClientsLimit
	}
	return s.reports.TopPayingClients(ctx, start, end, limit)
}

// ExportBestProfession renders the earnings-by-profession report as a
// downloadable file. Supported formats are "xlsx" and "pdf".
func (s *ReportService) ExportBestProfession(ctx context.Context, start, end time.Time, format string) (*ExportResult, error) {
	rows, err := s.BestProfession(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := model.EarningsReport{
		PeriodStart: start,
		PeriodEnd:   end,
		Rows:        rows,
	}
	period := fmt.Sprintf("%s-%s", start.Format("20060102"), end.Format("20060102"))

	switch format {
	case "", "xlsx":
		content, err := s.excel.Generate(report)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("earnings-by-profession-%s.xlsx", period),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	case "pdf":
		content, err := s.pdf.Generate(report)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("earnings-by-profession-%s.pdf", period),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", ErrInvalidInput, format)
	}
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start must be before or equal to end", ErrInvalidInput)
	}
	return nil
}
