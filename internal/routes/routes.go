package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/handlers"
	"nusacrm/internal/middleware"
	"nusacrm/internal/notify"
	"nusacrm/internal/session"
)

func SetupRoutes(
	r *gin.Engine,
	sess *session.Session,
	center *notify.Center,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	leadHandler *handlers.LeadHandler,
	productHandler *handlers.ProductHandler,
	dealHandler *handlers.DealHandler,
	customerHandler *handlers.CustomerHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	// ---- protected
	r.Use(middleware.RequireSession(sess))

	r.GET("/dashboard", dashboardHandler.Show)

	leads := r.Group("/leads")
	{
		leads.GET("", leadHandler.List)
		leads.GET("/new", leadHandler.New)
		leads.POST("", leadHandler.Create)
		leads.GET("/:id/edit", leadHandler.Edit)
		leads.POST("/:id", leadHandler.Update)
		leads.POST("/:id/delete", leadHandler.Delete)
		leads.POST("/:id/convert", leadHandler.Convert)
	}

	products := r.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/new", productHandler.New)
		products.POST("", productHandler.Create)
		products.GET("/:id/edit", productHandler.Edit)
		products.POST("/:id", productHandler.Update)
		products.POST("/:id/delete", productHandler.Deactivate)
	}

	deals := r.Group("/deals")
	{
		deals.GET("", dealHandler.List)
		deals.GET("/new", dealHandler.New)
		deals.POST("", dealHandler.Create)
		deals.GET("/:id", dealHandler.Detail)
		deals.POST("/:id/submit", dealHandler.Submit)
		deals.POST("/:id/activate", dealHandler.Activate)

		// manager-only surface; the backend enforces the same gate
		approvals := deals.Group("", middleware.RequireManager(sess, center))
		{
			approvals.POST("/:id/approve", dealHandler.Approve)
			approvals.POST("/:id/reject", dealHandler.Reject)
		}
	}

	customers := r.Group("/customers")
	{
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Detail)
	}

	reports := r.Group("/reports")
	{
		reports.GET("", reportHandler.Sales)
		reports.GET("/sales.xlsx", reportHandler.DownloadExcel)
		reports.GET("/sales.pdf", reportHandler.ExportPDF)
	}

	// unknown routes fall back to the default page
	r.NoRoute(func(c *gin.Context) {
		if sess.IsAuthenticated() {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		c.Redirect(http.StatusFound, "/login")
	})

	return r
}
