package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/soychecker/backend/config"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	// Pages
	router.GET("/", handler.Home)
	router.GET("/barcode", handler.BarcodeForm)
	router.POST("/barcode", handler.SubmitBarcode)
	router.POST("/barcode/clear", handler.ClearBarcode)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/products/:barcode", handler.GetProduct)
		v1.POST("/check", handler.CheckBarcode)
	}

	return router
}
