package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nusacrm/internal/models"
)

type stubPDF struct{ calls int }

func (s *stubPDF) SalesReportPDF(report *models.SalesReport) ([]byte, error) {
	s.calls++
	return []byte("%PDF-stub"), nil
}

func TestReportService_DownloadExcelRequiresFullRange(t *testing.T) {
	calls := 0
	client, c, done := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	defer done()

	svc := NewReportService(client, c, nil)
	for _, f := range []models.ReportFilters{
		{},
		{StartDate: "2026-01-01"},
		{EndDate: "2026-01-31"},
	} {
		_, _, err := svc.DownloadExcel(context.Background(), f)
		assert.ErrorIs(t, err, ErrReportRange)
	}
	assert.Zero(t, calls, "an incomplete range never reaches the backend")
}

func TestReportService_DownloadExcel(t *testing.T) {
	payload := []byte("PK\x03\x04")
	client, c, done := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports/sales.xlsx", r.URL.Path)
		require.Equal(t, "2026-01-01", r.URL.Query().Get("startDate"))
		require.Equal(t, "2026-01-31", r.URL.Query().Get("endDate"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(payload)
	})
	defer done()

	svc := NewReportService(client, c, nil)
	data, filename, err := svc.DownloadExcel(context.Background(), models.ReportFilters{StartDate: "2026-01-01", EndDate: "2026-01-31"})
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "sales-report-2026-01-01-to-2026-01-31.xlsx", filename)
}

func TestReportService_SalesIsCached(t *testing.T) {
	fetches := 0
	client, c, done := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fetches++
		var report models.SalesReport
		report.Summary.TotalRevenue = 12500000
		respond(w, http.StatusOK, report)
	})
	defer done()

	svc := NewReportService(client, c, nil)
	f := models.ReportFilters{StartDate: "2026-01-01", EndDate: "2026-01-31"}
	for i := 0; i < 2; i++ {
		report, err := svc.Sales(context.Background(), f)
		require.NoError(t, err)
		assert.Equal(t, float64(12500000), report.Summary.TotalRevenue)
	}
	assert.Equal(t, 1, fetches)

	// a different range is a different key
	_, err := svc.Sales(context.Background(), models.ReportFilters{StartDate: "2026-02-01", EndDate: "2026-02-28"})
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestReportService_ExportPDFUsesFetchedReport(t *testing.T) {
	client, c, done := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		var report models.SalesReport
		report.Period.StartDate = "2026-01-01"
		report.Period.EndDate = "2026-01-31"
		respond(w, http.StatusOK, report)
	})
	defer done()

	gen := &stubPDF{}
	svc := NewReportService(client, c, gen)
	data, filename, err := svc.ExportPDF(context.Background(), models.ReportFilters{StartDate: "2026-01-01", EndDate: "2026-01-31"})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), data)
	assert.Equal(t, "sales-report-2026-01-01-to-2026-01-31.pdf", filename)
	assert.Equal(t, 1, gen.calls)
}
