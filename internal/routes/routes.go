package routes

import (
	"net/http"
	"time"

	"invoice-dashboard-backend/internal/config"
	handler "invoice-dashboard-backend/internal/handlers"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// NewEngine builds the gin engine with the middleware chain shared by every route.
func NewEngine(cfg config.Config, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Location", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(metrics.GinMiddleware(m))
	r.Use(middleware.ErrorHandler())
	return r
}

func RegisterRoutes(r *gin.Engine, h *handler.InvoiceHandler, gatherer prometheus.Gatherer) {
	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	dashboard := r.Group("/dashboard")
	dashboard.GET("", h.GetSummary)
	dashboard.GET("/customers", h.ListCustomers)

	invoices := dashboard.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.POST("", h.CreateInvoice)
		invoices.POST("/import", h.ImportInvoices)
		invoices.GET("/:id/edit", h.GetInvoiceForEdit)
		invoices.GET("/:id/history", h.GetInvoiceHistory)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.POST("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
		invoices.POST("/:id/delete", h.DeleteInvoice)
	}
}
