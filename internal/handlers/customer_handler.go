package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/models"
	"nusacrm/internal/notify"
	"nusacrm/internal/services"
	"nusacrm/internal/session"
)

type CustomerHandler struct {
	Customers *services.CustomerService
	Session   *session.Session
	Center    *notify.Center
}

func NewCustomerHandler(customers *services.CustomerService, sess *session.Session, center *notify.Center) *CustomerHandler {
	return &CustomerHandler{Customers: customers, Session: sess, Center: center}
}

func (h *CustomerHandler) List(c *gin.Context) {
	filters := models.CustomerFilters{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", models.DefaultPage),
		Limit:  queryInt(c, "limit", models.DefaultLimit),
	}
	page, err := h.Customers.List(c.Request.Context(), filters)
	if err != nil {
		page = models.Page[models.Customer]{}
	}
	c.HTML(http.StatusOK, "customers.html", viewData(h.Session, h.Center, gin.H{
		"Title":      "Customers",
		"Customers":  page.Items,
		"Pagination": page.Pagination,
		"Filters":    filters,
	}))
}

func (h *CustomerHandler) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/customers")
		return
	}
	customer, err := h.Customers.Get(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/customers")
		return
	}
	c.HTML(http.StatusOK, "customer_detail.html", viewData(h.Session, h.Center, gin.H{
		"Title":    customer.Name,
		"Customer": customer,
	}))
}
