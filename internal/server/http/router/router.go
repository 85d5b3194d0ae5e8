package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/deliveryportal/internal/config"
	"github.com/polkiloo/deliveryportal/internal/metrics"
	"github.com/polkiloo/deliveryportal/internal/server/http/handlers"
	"github.com/polkiloo/deliveryportal/internal/server/http/middleware"
)

const (
	metricsPath = "/metrics"
	healthPath  = "/healthz"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PortalFacade, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger, metricsPath, healthPath))
	engine.Use(middleware.CORS(cfg.AllowedOrigins))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	paymentHandler := handlers.NewPaymentHandler(facade)
	invoiceHandler := handlers.NewInvoiceHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)
	authenticate := middleware.Authenticate(facade)

	api := engine.Group("/api")

	// Webhook and verify are authenticated by gateway signatures, not bearer tokens.
	payments := api.Group("/payments")
	payments.POST("/orders", authenticate, paymentHandler.CreateOrder)
	payments.POST("/webhook", paymentHandler.Webhook)
	payments.POST("/verify", paymentHandler.Verify)
	payments.GET("/config", paymentHandler.Config)

	api.GET("/projects/:id/invoices", authenticate, invoiceHandler.ListByProject)

	admin := api.Group("/admin")
	admin.Use(authenticate, middleware.AdminOnly())
	admin.POST("/invoices", invoiceHandler.Create)
	admin.PATCH("/invoices/:id/status", invoiceHandler.UpdateStatus)
	admin.DELETE("/invoices/:id", invoiceHandler.Delete)

	engine.GET(healthPath, healthHandler.Check)
	if m != nil {
		engine.GET(metricsPath, gin.WrapH(m.Handler()))
	}

	return engine
}
