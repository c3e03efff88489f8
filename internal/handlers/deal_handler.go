package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/models"
	"nusacrm/internal/notify"
	"nusacrm/internal/services"
	"nusacrm/internal/session"
)

type DealHandler struct {
	Deals     *services.DealService
	Products  *services.ProductService
	Leads     *services.LeadService
	Customers *services.CustomerService
	Telegram  *services.TelegramNotifier
	Session   *session.Session
	Center    *notify.Center
}

func NewDealHandler(
	deals *services.DealService,
	products *services.ProductService,
	leads *services.LeadService,
	customers *services.CustomerService,
	telegram *services.TelegramNotifier,
	sess *session.Session,
	center *notify.Center,
) *DealHandler {
	return &DealHandler{
		Deals:     deals,
		Products:  products,
		Leads:     leads,
		Customers: customers,
		Telegram:  telegram,
		Session:   sess,
		Center:    center,
	}
}

func (h *DealHandler) List(c *gin.Context) {
	filters := models.DealFilters{
		Status: models.DealStatus(c.Query("status")),
		Page:   queryInt(c, "page", models.DefaultPage),
		Limit:  queryInt(c, "limit", models.DefaultLimit),
	}
	page, err := h.Deals.List(c.Request.Context(), filters)
	if err != nil {
		page = models.Page[models.Deal]{}
	}
	c.HTML(http.StatusOK, "deals.html", viewData(h.Session, h.Center, gin.H{
		"Title":      "Deals",
		"Deals":      page.Items,
		"Pagination": page.Pagination,
		"Filters":    filters,
	}))
}

func (h *DealHandler) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/deals")
		return
	}
	deal, err := h.Deals.Get(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/deals")
		return
	}
	c.HTML(http.StatusOK, "deal_detail.html", viewData(h.Session, h.Center, gin.H{
		"Title":   "Deal " + deal.DealNumber,
		"Deal":    deal,
		"Actions": services.AvailableActions(deal, h.Session.Role()),
	}))
}

func (h *DealHandler) New(c *gin.Context) {
	ctx := c.Request.Context()
	products, _ := h.Products.List(ctx, models.ProductFilters{ActiveOnly: true, Limit: 100})
	leads, _ := h.Leads.List(ctx, models.LeadFilters{Status: models.LeadQualified, Limit: 100})
	customers, _ := h.Customers.List(ctx, models.CustomerFilters{Limit: 100})
	c.HTML(http.StatusOK, "deal_form.html", viewData(h.Session, h.Center, gin.H{
		"Title":     "New Deal",
		"Products":  products.Items,
		"Leads":     leads.Items,
		"Customers": customers.Items,
	}))
}

// Create reads the item rows off the form. Untouched rows arrive with zero
// product/quantity/price and are dropped client-side before submission.
func (h *DealHandler) Create(c *gin.Context) {
	req := models.CreateDealRequest{
		LeadID:     formInt(c, "lead_id"),
		CustomerID: formInt(c, "customer_id"),
		Title:      c.PostForm("title"),
	}
	productIDs := c.PostFormArray("item_product_id")
	quantities := c.PostFormArray("item_quantity")
	prices := c.PostFormArray("item_agreed_price")
	for i := range productIDs {
		item := models.CreateDealItem{ProductID: atoi(productIDs[i])}
		if i < len(quantities) {
			item.Quantity = atoi(quantities[i])
		}
		if i < len(prices) {
			item.AgreedPrice = atof(prices[i])
		}
		req.Items = append(req.Items, item)
	}

	deal, err := h.Deals.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrDealReference) || errors.Is(err, services.ErrDealNoItems) {
			h.Center.Push(notify.LevelError, err.Error())
		}
		c.Redirect(http.StatusFound, "/deals/new")
		return
	}
	h.Center.Push(notify.LevelSuccess, "Deal created successfully!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/deals/%d", deal.ID))
}

func (h *DealHandler) Submit(c *gin.Context)   { h.doTransition(c, services.ActionSubmit) }
func (h *DealHandler) Approve(c *gin.Context)  { h.doTransition(c, services.ActionApprove) }
func (h *DealHandler) Reject(c *gin.Context)   { h.doTransition(c, services.ActionReject) }
func (h *DealHandler) Activate(c *gin.Context) { h.doTransition(c, services.ActionActivate) }

// doTransition issues exactly one transition request. On failure the state
// is untouched and nothing is retried; the operator re-invokes.
func (h *DealHandler) doTransition(c *gin.Context, action services.Action) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/deals")
		return
	}
	ctx := c.Request.Context()

	current, err := h.Deals.Get(ctx, id)
	if err != nil {
		c.Redirect(http.StatusFound, "/deals")
		return
	}
	if !services.ActionOffered(current, h.Session.Role(), action) {
		h.Center.Push(notify.LevelError, "This action is not available for the deal's current state")
		c.Redirect(http.StatusFound, fmt.Sprintf("/deals/%d", id))
		return
	}

	note := c.PostForm("note")
	var deal *models.Deal
	switch action {
	case services.ActionSubmit:
		deal, err = h.Deals.Submit(ctx, id)
	case services.ActionApprove:
		deal, err = h.Deals.Approve(ctx, id, note)
	case services.ActionReject:
		deal, err = h.Deals.Reject(ctx, id, note)
	case services.ActionActivate:
		deal, err = h.Deals.Activate(ctx, id)
	}
	if err != nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/deals/%d", id))
		return
	}

	h.Center.Push(notify.LevelSuccess, transitionMessage(action))
	h.Telegram.DealEvent(deal, action, note)
	c.Redirect(http.StatusFound, fmt.Sprintf("/deals/%d", id))
}

func transitionMessage(action services.Action) string {
	switch action {
	case services.ActionSubmit:
		return "Deal submitted for approval!"
	case services.ActionApprove:
		return "Deal approved successfully!"
	case services.ActionReject:
		return "Deal rejected."
	case services.ActionActivate:
		return "Deal services activated successfully!"
	}
	return "Done"
}
