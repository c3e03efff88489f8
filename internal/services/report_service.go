package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"nusacrm/internal/api"
	"nusacrm/internal/cache"
	"nusacrm/internal/models"
)

var ErrReportRange = errors.New("start date and end date are required for export")

// ReportPDFGenerator renders a fetched sales report locally.
type ReportPDFGenerator interface {
	SalesReportPDF(report *models.SalesReport) ([]byte, error)
}

type ReportService struct {
	API   *api.Client
	Cache *cache.Cache
	PDF   ReportPDFGenerator
}

func NewReportService(apiClient *api.Client, c *cache.Cache, pdfGen ReportPDFGenerator) *ReportService {
	return &ReportService{API: apiClient, Cache: c, PDF: pdfGen}
}

func reportQuery(f models.ReportFilters) url.Values {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	return q
}

func (s *ReportService) Sales(ctx context.Context, f models.ReportFilters) (*models.SalesReport, error) {
	q := reportQuery(f)
	key := cache.ListKey(cache.PrefixReports+"/sales", q)
	report, err := cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.SalesReport, error) {
		var r models.SalesReport
		err := s.API.Get(ctx, "/reports/sales", q, &r)
		return r, err
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// DownloadExcel streams the server-generated spreadsheet. The filename is
// synthesized client-side from the requested range.
func (s *ReportService) DownloadExcel(ctx context.Context, f models.ReportFilters) (data []byte, filename string, err error) {
	if f.StartDate == "" || f.EndDate == "" {
		return nil, "", ErrReportRange
	}
	data, _, err = s.API.Download(ctx, "/reports/sales.xlsx", reportQuery(f))
	if err != nil {
		return nil, "", err
	}
	return data, ExcelFilename(f), nil
}

func ExcelFilename(f models.ReportFilters) string {
	return fmt.Sprintf("sales-report-%s-to-%s.xlsx", f.StartDate, f.EndDate)
}

// ExportPDF renders the already-fetched report with the local generator.
func (s *ReportService) ExportPDF(ctx context.Context, f models.ReportFilters) (data []byte, filename string, err error) {
	if s.PDF == nil {
		return nil, "", errors.New("pdf export is not configured")
	}
	report, err := s.Sales(ctx, f)
	if err != nil {
		return nil, "", err
	}
	data, err = s.PDF.SalesReportPDF(report)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("sales-report-%s-to-%s.pdf", report.Period.StartDate, report.Period.EndDate), nil
}
