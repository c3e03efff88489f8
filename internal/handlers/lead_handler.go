package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/models"
	"nusacrm/internal/notify"
	"nusacrm/internal/services"
	"nusacrm/internal/session"
)

type LeadHandler struct {
	Leads   *services.LeadService
	Session *session.Session
	Center  *notify.Center
}

func NewLeadHandler(leads *services.LeadService, sess *session.Session, center *notify.Center) *LeadHandler {
	return &LeadHandler{Leads: leads, Session: sess, Center: center}
}

func (h *LeadHandler) List(c *gin.Context) {
	filters := models.LeadFilters{
		Status: models.LeadStatus(c.Query("status")),
		Source: models.LeadSource(c.Query("source")),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", models.DefaultPage),
		Limit:  queryInt(c, "limit", models.DefaultLimit),
	}
	page, err := h.Leads.List(c.Request.Context(), filters)
	if err != nil {
		page = models.Page[models.Lead]{}
	}
	c.HTML(http.StatusOK, "leads.html", viewData(h.Session, h.Center, gin.H{
		"Title":      "Leads",
		"Leads":      page.Items,
		"Pagination": page.Pagination,
		"Filters":    filters,
	}))
}

func (h *LeadHandler) New(c *gin.Context) {
	c.HTML(http.StatusOK, "lead_form.html", viewData(h.Session, h.Center, gin.H{
		"Title":    "New Lead",
		"Statuses": models.ManualLeadStatuses(),
	}))
}

func (h *LeadHandler) Create(c *gin.Context) {
	req := models.CreateLeadRequest{
		Name:    c.PostForm("name"),
		Contact: c.PostForm("contact"),
		Email:   c.PostForm("email"),
		Address: c.PostForm("address"),
		Needs:   c.PostForm("needs"),
		Source:  models.LeadSource(c.PostForm("source")),
		Status:  models.LeadStatus(c.PostForm("status")),
	}
	if _, err := h.Leads.Create(c.Request.Context(), req); err != nil {
		c.Redirect(http.StatusFound, "/leads/new")
		return
	}
	h.Center.Push(notify.LevelSuccess, "Lead created successfully")
	c.Redirect(http.StatusFound, "/leads")
}

func (h *LeadHandler) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/leads")
		return
	}
	lead, err := h.Leads.Get(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/leads")
		return
	}
	c.HTML(http.StatusOK, "lead_form.html", viewData(h.Session, h.Center, gin.H{
		"Title":    "Edit Lead",
		"Lead":     lead,
		"Statuses": models.ManualLeadStatuses(),
	}))
}

func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/leads")
		return
	}
	req := models.UpdateLeadRequest{
		Name:    c.PostForm("name"),
		Contact: c.PostForm("contact"),
		Email:   c.PostForm("email"),
		Address: c.PostForm("address"),
		Needs:   c.PostForm("needs"),
		Source:  models.LeadSource(c.PostForm("source")),
		Status:  models.LeadStatus(c.PostForm("status")),
	}
	if _, err := h.Leads.Update(c.Request.Context(), id, req); err != nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/leads/%d/edit", id))
		return
	}
	h.Center.Push(notify.LevelSuccess, "Lead updated successfully")
	c.Redirect(http.StatusFound, "/leads")
}

func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/leads")
		return
	}
	if err := h.Leads.Delete(c.Request.Context(), id); err == nil {
		h.Center.Push(notify.LevelSuccess, "Lead deleted successfully")
	}
	c.Redirect(http.StatusFound, "/leads")
}

func (h *LeadHandler) Convert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/leads")
		return
	}
	deal, err := h.Leads.Convert(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/leads")
		return
	}
	h.Center.Push(notify.LevelSuccess, "Lead converted to deal "+deal.DealNumber)
	c.Redirect(http.StatusFound, fmt.Sprintf("/deals/%d", deal.ID))
}
