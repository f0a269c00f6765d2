package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/gigledger/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the earnings-by-profession report as a one-page
// portrait table.
func (g *Generator) Generate(report model.EarningsReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Earnings by profession", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s", formatDate(report.PeriodStart), formatDate(report.PeriodEnd)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"#", "Profession", "Total earned", "Jobs paid"}
	colWidths := []float64{12, 98, 40, 30}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for i, row := range report.Rows {
		drawTableRow(pdf, g.fontName, []string{
			fmt.Sprintf("%d", i+1),
			row.Profession,
			row.TotalEarned.StringFixed(2),
			fmt.Sprintf("%d", row.AmountOfJobsPaid),
		}, colWidths, false)
	}

	if len(report.Rows) == 0 {
		pdf.Ln(2)
		pdf.CellFormat(0, 6, "No paid jobs in the selected period.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, font string, cells []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(font, style, 10)
	for i, cell := range cells {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
