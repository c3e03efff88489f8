package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/notify"
	"nusacrm/internal/services"
	"nusacrm/internal/session"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
	Session   *session.Session
	Center    *notify.Center
}

func NewDashboardHandler(dashboard *services.DashboardService, sess *session.Session, center *notify.Center) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard, Session: sess, Center: center}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	stats, err := h.Dashboard.Stats(c.Request.Context())
	if err != nil {
		// the adapter already pushed the notification; render an empty board
		stats = nil
	}
	c.HTML(http.StatusOK, "dashboard.html", viewData(h.Session, h.Center, gin.H{
		"Title": "Dashboard",
		"Stats": stats,
	}))
}
