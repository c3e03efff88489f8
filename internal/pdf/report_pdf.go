package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"nusacrm/internal/models"
)

// ReportGenerator renders a fetched sales report to PDF in memory. The
// authoritative spreadsheet export stays on the server; this is a local
// convenience for the numbers already on screen.
type ReportGenerator struct {
	author string
}

func NewReportGenerator(author string) *ReportGenerator {
	if author == "" {
		author = "NUSA CRM"
	}
	return &ReportGenerator{author: author}
}

func (g *ReportGenerator) SalesReportPDF(report *models.SalesReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Sales Report", false)
	pdf.SetAuthor(g.author, false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "SALES REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("%s  -  %s", report.Period.StartDate, report.Period.EndDate)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Summary")
	g.kvLine(pdf, "Total leads", fmt.Sprintf("%d", report.Summary.TotalLeads))
	g.kvLine(pdf, "Converted leads", fmt.Sprintf("%d", report.Summary.ConvertedLeads))
	g.kvLine(pdf, "Conversion rate", report.Summary.ConversionRate)
	g.kvLine(pdf, "Total deals", fmt.Sprintf("%d", report.Summary.TotalDeals))
	g.kvLine(pdf, "Approved deals", fmt.Sprintf("%d", report.Summary.ApprovedDeals))
	g.kvLine(pdf, "Total revenue", fmt.Sprintf("%.2f", report.Summary.TotalRevenue))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Top products")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Sold", "B", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, "Revenue", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, p := range report.TopProducts {
		pdf.CellFormat(90, 6, p.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", p.Sold), "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", p.Revenue), "", 1, "R", false, 0, "")
	}
	if len(report.TopProducts) == 0 {
		pdf.CellFormat(0, 6, "No product sales in this period", "", 1, "L", false, 0, "")
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
