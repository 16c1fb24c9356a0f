package api

import (
	"github.com/Conceptual-Machines/innopilot-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/innopilot-api/internal/api/middleware"
	"github.com/Conceptual-Machines/innopilot-api/internal/config"
	"github.com/Conceptual-Machines/innopilot-api/internal/prompt"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gateway is what the router needs from the prompt gateway
type Gateway interface {
	handlers.IdeaGateway
	ProviderName() string
	Model() string
}

func SetupRouter(cfg *config.Config, gateway Gateway, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	router.Use(apimiddleware.Prometheus())

	router.Use(apimiddleware.CORS(cfg.CORSAllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(gateway.ProviderName(), gateway.Model())
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	metricsHandler := handlers.NewMetricsHandler(version, gateway.ProviderName(), gateway.Model())
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// One POST endpoint per prompting strategy
	ideaHandler := handlers.NewIdeaHandler(gateway)
	for _, strategy := range prompt.AllStrategies() {
		router.POST(strategy.Path(), ideaHandler.Handle(strategy))
	}

	return router
}
