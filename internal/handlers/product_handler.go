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

type ProductHandler struct {
	Products *services.ProductService
	Session  *session.Session
	Center   *notify.Center
}

func NewProductHandler(products *services.ProductService, sess *session.Session, center *notify.Center) *ProductHandler {
	return &ProductHandler{Products: products, Session: sess, Center: center}
}

func (h *ProductHandler) List(c *gin.Context) {
	filters := models.ProductFilters{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", models.DefaultPage),
		Limit:  queryInt(c, "limit", models.DefaultLimit),
	}
	page, err := h.Products.List(c.Request.Context(), filters)
	if err != nil {
		page = models.Page[models.Product]{}
	}
	c.HTML(http.StatusOK, "products.html", viewData(h.Session, h.Center, gin.H{
		"Title":      "Products",
		"Products":   page.Items,
		"Pagination": page.Pagination,
		"Filters":    filters,
	}))
}

func (h *ProductHandler) New(c *gin.Context) {
	c.HTML(http.StatusOK, "product_form.html", viewData(h.Session, h.Center, gin.H{
		"Title": "New Product",
	}))
}

func (h *ProductHandler) Create(c *gin.Context) {
	hpp := formFloat(c, "hpp")
	margin := formFloat(c, "margin_percent")
	req := models.CreateProductRequest{
		Name:          c.PostForm("name"),
		Description:   c.PostForm("description"),
		HPP:           hpp,
		MarginPercent: margin,
		SpeedMbps:     formInt(c, "speed_mbps"),
		Bandwidth:     c.PostForm("bandwidth"),
	}
	if _, err := h.Products.Create(c.Request.Context(), req); err != nil {
		c.Redirect(http.StatusFound, "/products/new")
		return
	}
	h.Center.Push(notify.LevelSuccess, "Product created successfully")
	c.Redirect(http.StatusFound, "/products")
}

func (h *ProductHandler) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/products")
		return
	}
	product, err := h.Products.Get(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/products")
		return
	}
	// preview only; the server's sellingPrice wins after the round trip
	preview := models.SellingPrice(product.HPP, product.MarginPercent)
	c.HTML(http.StatusOK, "product_form.html", viewData(h.Session, h.Center, gin.H{
		"Title":   "Edit Product",
		"Product": product,
		"Preview": preview,
	}))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/products")
		return
	}
	hpp := formFloat(c, "hpp")
	margin := formFloat(c, "margin_percent")
	req := models.UpdateProductRequest{
		Name:          c.PostForm("name"),
		Description:   c.PostForm("description"),
		HPP:           &hpp,
		MarginPercent: &margin,
		SpeedMbps:     formInt(c, "speed_mbps"),
		Bandwidth:     c.PostForm("bandwidth"),
	}
	if _, err := h.Products.Update(c.Request.Context(), id, req); err != nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/products/%d/edit", id))
		return
	}
	h.Center.Push(notify.LevelSuccess, "Product updated successfully")
	c.Redirect(http.StatusFound, "/products")
}

func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/products")
		return
	}
	if err := h.Products.Deactivate(c.Request.Context(), id); err == nil {
		h.Center.Push(notify.LevelSuccess, "Product deactivated")
	}
	c.Redirect(http.StatusFound, "/products")
}
