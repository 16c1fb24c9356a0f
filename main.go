package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Conceptual-Machines/innopilot-api/internal/api"
	"github.com/Conceptual-Machines/innopilot-api/internal/config"
	"github.com/Conceptual-Machines/innopilot-api/internal/llm"
	"github.com/Conceptual-Machines/innopilot-api/internal/logger"
	"github.com/Conceptual-Machines/innopilot-api/internal/metrics"
	"github.com/Conceptual-Machines/innopilot-api/internal/observability"
	"github.com/Conceptual-Machines/innopilot-api/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout = 2 * time.Second
	shutdownTimeout    = 10 * time.Second
	readHeaderTimeout  = 10 * time.Second
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "innopilot-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			Debug:            !cfg.IsProduction(),
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx := context.Background()

	langfuse := observability.InitializeLangfuse(ctx, cfg)
	defer langfuse.Flush(context.Background())

	// The provider client is built once and shared by every request
	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GoogleAPIKey)
	provider, err := factory.GetProvider(ctx, cfg.LLMProvider)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to initialize LLM provider: ", err)
	}
	log.Printf("✅ LLM provider ready (provider: %s, model: %s)", provider.Name(), cfg.ModelName())

	recorder := metrics.NewRecorder(metrics.NewCloudWatchClient(ctx, cfg.Environment))
	gateway := services.NewPromptGateway(provider, cfg.ModelName(), cfg.GenerationTimeout, langfuse, recorder)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, gateway, GetVersion())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Printf("🚀 Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sentry.CaptureException(err)
			log.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string, len(headers))
	sensitiveKeys := map[string]bool{
		"authorization":  true,
		"cookie":         true,
		"x-api-key":      true,
		"x-goog-api-key": true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
