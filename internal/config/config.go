package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultGeminiModel       = "gemini-2.5-flash"
	defaultOpenAIModel       = "gpt-4.1-mini"
	defaultGenerationTimeout = 60 * time.Second
	environmentProduction    = "production"
)

// Config holds the application configuration.
// The service is stateless: the only secrets are the LLM and observability credentials.
type Config struct {
	// Environment
	Environment string
	Port        string
	LogLevel    string

	// LLM
	LLMProvider       string        // "gemini" (default) or "openai"
	LLMModel          string        // Empty means the provider default
	GoogleAPIKey      string        // Gemini API key
	OpenAIAPIKey      string        // OpenAI API key
	GenerationTimeout time.Duration // Upper bound for a single model call

	// HTTP
	CORSAllowedOrigins []string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "5000"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		LLMModel:           getEnv("LLM_MODEL", ""),
		GoogleAPIKey:       getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", "")),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		GenerationTimeout:  getEnvAsDuration("GENERATION_TIMEOUT", defaultGenerationTimeout),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:  getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:  getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:       getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:    getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

// Validate checks that the selected provider can actually be reached.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive, got %s", c.GenerationTimeout)
	}

	switch c.LLMProvider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required when LLM_PROVIDER=%s", ProviderGemini)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenAI)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (allowed: %s, %s)", c.LLMProvider, ProviderGemini, ProviderOpenAI)
	}

	return nil
}

// ModelName returns the configured model or the default for the selected provider
func (c *Config) ModelName() string {
	if c.LLMModel != "" {
		return c.LLMModel
	}
	if c.LLMProvider == ProviderOpenAI {
		return defaultOpenAIModel
	}
	return defaultGeminiModel
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == environmentProduction
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
