package excel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/gigledger/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the earnings-by-profession report as a single-sheet
// workbook: a period header followed by the ranked rows.
func (g *Generator) Generate(report model.EarningsReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Earnings"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Report")
	set("B1", "Earnings by profession")
	set("A2", "Period start")
	set("B2", formatDate(report.PeriodStart))
	set("A3", "Period end")
	set("B3", formatDate(report.PeriodEnd))
	set("A4", "Total earned")
	set("B4", sumEarnings(report.Rows).StringFixed(2))

	tableRow := 6
	set(fmt.Sprintf("A%d", tableRow), "Profession")
	set(fmt.Sprintf("B%d", tableRow), "Total earned")
	set(fmt.Sprintf("C%d", tableRow), "Jobs paid")

	for i, row := range report.Rows {
		line := tableRow + 1 + i
		set(fmt.Sprintf("A%d", line), row.Profession)
		set(fmt.Sprintf("B%d", line), row.TotalEarned.StringFixed(2))
		set(fmt.Sprintf("C%d", line), row.AmountOfJobsPaid)
	}

	_ = file.SetColWidth(sheet, "A", "A", 35)
	_ = file.SetColWidth(sheet, "B", "B", 16)
	_ = file.SetColWidth(sheet, "C", "C", 12)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sumEarnings(rows []model.ProfessionEarnings) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.TotalEarned)
	}
	return total
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
