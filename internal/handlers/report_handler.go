package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/models"
	"nusacrm/internal/notify"
	"nusacrm/internal/services"
	"nusacrm/internal/session"
)

type ReportHandler struct {
	Reports *services.ReportService
	Session *session.Session
	Center  *notify.Center
}

func NewReportHandler(reports *services.ReportService, sess *session.Session, center *notify.Center) *ReportHandler {
	return &ReportHandler{Reports: reports, Session: sess, Center: center}
}

func reportFilters(c *gin.Context) models.ReportFilters {
	return models.ReportFilters{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}

func (h *ReportHandler) Sales(c *gin.Context) {
	filters := reportFilters(c)
	var report *models.SalesReport
	if filters.StartDate != "" || filters.EndDate != "" {
		report, _ = h.Reports.Sales(c.Request.Context(), filters)
	}
	c.HTML(http.StatusOK, "reports.html", viewData(h.Session, h.Center, gin.H{
		"Title":   "Sales Report",
		"Report":  report,
		"Filters": filters,
	}))
}

func (h *ReportHandler) DownloadExcel(c *gin.Context) {
	filters := reportFilters(c)
	data, filename, err := h.Reports.DownloadExcel(c.Request.Context(), filters)
	if err != nil {
		if errors.Is(err, services.ErrReportRange) {
			h.Center.Push(notify.LevelError, err.Error())
		}
		c.Redirect(http.StatusFound, "/reports")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ReportHandler) ExportPDF(c *gin.Context) {
	filters := reportFilters(c)
	if filters.StartDate == "" || filters.EndDate == "" {
		h.Center.Push(notify.LevelError, services.ErrReportRange.Error())
		c.Redirect(http.StatusFound, "/reports")
		return
	}
	data, filename, err := h.Reports.ExportPDF(c.Request.Context(), filters)
	if err != nil {
		c.Redirect(http.StatusFound, "/reports")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
