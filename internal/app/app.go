package app

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/api"
	"nusacrm/internal/cache"
	"nusacrm/internal/config"
	"nusacrm/internal/handlers"
	"nusacrm/internal/notify"
	"nusacrm/internal/pdf"
	"nusacrm/internal/routes"
	"nusacrm/internal/services"
	"nusacrm/internal/session"
)

func Run() {
	cfg := config.LoadConfig()

	// === Session ===
	store := session.NewFileStore(cfg.Session.File)
	sess := session.New(store)

	// === Notifications ===
	center := notify.NewCenter()

	// === API client ===
	apiClient := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout(),
		RateLimit: cfg.API.RateLimit,
		Session:   sess,
		Notifier:  center,
	})

	// === Cache ===
	queryCache := cache.New(cfg.Cache.StaleTime())

	// === Services ===
	authService := services.NewAuthService(apiClient, sess, queryCache)
	leadService := services.NewLeadService(apiClient, queryCache)
	productService := services.NewProductService(apiClient, queryCache)
	dealService := services.NewDealService(apiClient, queryCache)
	customerService := services.NewCustomerService(apiClient, queryCache)
	dashboardService := services.NewDashboardService(apiClient, queryCache)

	pdfGen := pdf.NewReportGenerator("NUSA CRM")
	reportService := services.NewReportService(apiClient, queryCache, pdfGen)

	telegram, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.DryRun)
	if err != nil {
		log.Printf("[app] telegram notifier disabled: %v", err)
		telegram = nil
	}

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService, sess, center)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, sess, center)
	leadHandler := handlers.NewLeadHandler(leadService, sess, center)
	productHandler := handlers.NewProductHandler(productService, sess, center)
	dealHandler := handlers.NewDealHandler(dealService, productService, leadService, customerService, telegram, sess, center)
	customerHandler := handlers.NewCustomerHandler(customerService, sess, center)
	reportHandler := handlers.NewReportHandler(reportService, sess, center)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.LoadHTMLGlob("web/templates/*.html")

	routes.SetupRoutes(
		router,
		sess,
		center,
		authHandler,
		dashboardHandler,
		leadHandler,
		productHandler,
		dealHandler,
		customerHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[app] listening on %s, backend %s", listenAddr, cfg.API.BaseURL)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("[app] server failed: ", err)
	}
}
