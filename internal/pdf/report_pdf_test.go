package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nusacrm/internal/models"
)

func sampleReport() *models.SalesReport {
	var r models.SalesReport
	r.Period.StartDate = "2026-01-01"
	r.Period.EndDate = "2026-01-31"
	r.Summary.TotalLeads = 40
	r.Summary.ConvertedLeads = 12
	r.Summary.ConversionRate = "30.0%"
	r.Summary.TotalDeals = 15
	r.Summary.ApprovedDeals = 10
	r.Summary.TotalRevenue = 87500000
	r.TopProducts = []models.ReportProduct{
		{ProductID: 1, Name: "Dedicated 100 Mbps", Sold: 6, Revenue: 54000000},
		{ProductID: 2, Name: "Broadband 50 Mbps", Sold: 9, Revenue: 33500000},
	}
	return &r
}

func TestSalesReportPDF(t *testing.T) {
	gen := NewReportGenerator("NUSA CRM")
	data, err := gen.SalesReportPDF(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
}

func TestSalesReportPDF_EmptyProducts(t *testing.T) {
	r := sampleReport()
	r.TopProducts = nil
	data, err := NewReportGenerator("").SalesReportPDF(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
