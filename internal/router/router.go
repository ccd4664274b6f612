package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	// Registers the OpenAPI document served under /swagger.
	_ "docanalyzer/docs"
	"docanalyzer/internal/handler"
	"docanalyzer/internal/middleware"
	"docanalyzer/internal/observability/metrics"
)

// Setup configures the Gin engine with all routes and middleware. m may be
// nil to disable request metrics and the /metrics endpoint.
func Setup(
	docH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
	m *metrics.Metrics,
	allowedOrigins []string,
	logger *zap.Logger,
) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/upload", docH.Upload)
	r.GET("/documents", docH.List)
	r.GET("/documents/export", docH.Export)
	r.GET("/analysis/:id", docH.GetAnalysis)

	return r
}
