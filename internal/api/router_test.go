package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Conceptual-Machines/innopilot-api/internal/config"
	"github.com/Conceptual-Machines/innopilot-api/internal/llm"
	"github.com/Conceptual-Machines/innopilot-api/internal/metrics"
	"github.com/Conceptual-Machines/innopilot-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu       sync.Mutex
	requests []*llm.GenerationRequest
	panics   bool
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(_ context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, request)
	p.mu.Unlock()
	if p.panics {
		panic("provider exploded")
	}
	return &llm.GenerationResponse{Text: "Feasibility: high"}, nil
}

func (p *stubProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

func setupTestRouter(provider llm.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{CORSAllowedOrigins: []string{"*"}}
	gateway := services.NewPromptGateway(provider, "stub-model", time.Second, nil, metrics.NewRecorder(nil))
	return SetupRouter(cfg, gateway, "test")
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

var strategyPaths = []string{
	"/zero-shot",
	"/one-shot",
	"/multi-shot",
	"/cot-prompt",
	"/dynamic-prompt",
	"/system-user-prompt",
	"/temperature-prompt",
}

func TestRouter_MissingIdeaIs400WithoutModelCall(t *testing.T) {
	provider := &stubProvider{}
	router := setupTestRouter(provider)

	for _, path := range strategyPaths {
		for _, body := range []string{"", `{}`, `{"userIdea":""}`} {
			w := doRequest(router, http.MethodPost, path, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "%s %q", path, body)
			assert.Equal(t, map[string]interface{}{"error": "Please provide userIdea"}, decode(t, w))
		}
	}
	assert.Equal(t, 0, provider.calls())
}

func TestRouter_DefaultsEchoedForEveryStrategy(t *testing.T) {
	router := setupTestRouter(&stubProvider{})

	for _, path := range strategyPaths {
		w := doRequest(router, http.MethodPost, path, `{"userIdea":"X"}`)
		require.Equal(t, http.StatusOK, w.Code, path)

		body := decode(t, w)
		assert.Equal(t, "X", body["idea"])
		assert.Equal(t, 0.9, body["top_p"])
		assert.Equal(t, float64(50), body["top_k"])
		assert.Equal(t, 0.7, body["temperature"])
	}
}

func TestRouter_SuppliedSamplingEchoedVerbatim(t *testing.T) {
	router := setupTestRouter(&stubProvider{})

	for _, path := range strategyPaths {
		w := doRequest(router, http.MethodPost, path, `{"userIdea":"X","topP":0.35,"topK":7,"temperature":0.15}`)
		require.Equal(t, http.StatusOK, w.Code, path)

		body := decode(t, w)
		assert.Equal(t, 0.35, body["top_p"])
		assert.Equal(t, float64(7), body["top_k"])
		assert.Equal(t, 0.15, body["temperature"])
	}
}

func TestRouter_ZeroShotScenario(t *testing.T) {
	router := setupTestRouter(&stubProvider{})

	w := doRequest(router, http.MethodPost, "/zero-shot", `{"userIdea":"AI meal planner"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "AI meal planner", body["idea"])
	assert.Equal(t, 0.9, body["top_p"])
	assert.Equal(t, float64(50), body["top_k"])
	assert.Equal(t, 0.7, body["temperature"])
	assert.NotEmpty(t, body["zero_shot_response"])
}

func TestRouter_DynamicScenario(t *testing.T) {
	provider := &stubProvider{}
	router := setupTestRouter(provider)

	w := doRequest(router, http.MethodPost, "/dynamic-prompt", `{"userIdea":"X","category":"edtech","detailLevel":"detailed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "edtech", body["category"])
	assert.Equal(t, "detailed", body["detailLevel"])
	assert.NotEmpty(t, body["dynamic_prompt_response"])

	w = doRequest(router, http.MethodPost, "/dynamic-prompt", `{"userIdea":"X"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "Not provided", body["category"])
	assert.Equal(t, "summary", body["detailLevel"])

	require.Equal(t, 2, provider.calls())
	assert.NotContains(t, provider.requests[1].Messages[0].Content, "Not provided")
}

func TestRouter_TemperatureScenario(t *testing.T) {
	provider := &stubProvider{}
	router := setupTestRouter(provider)

	w := doRequest(router, http.MethodPost, "/temperature-prompt", `{"userIdea":"X","temperature":1.2}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, 1.2, body["temperature"])
	assert.NotEmpty(t, body["temperature_response"])
	require.Equal(t, 1, provider.calls())
	assert.Equal(t, 1.2, provider.requests[0].Sampling.Temperature)
}

func TestRouter_SystemUserSendsTwoSegments(t *testing.T) {
	provider := &stubProvider{}
	router := setupTestRouter(provider)

	w := doRequest(router, http.MethodPost, "/system-user-prompt", `{"userIdea":"Drone delivery"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, 1, provider.calls())
	messages := provider.requests[0].Messages
	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := setupTestRouter(&stubProvider{})

	w := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRouter_CORS(t *testing.T) {
	router := setupTestRouter(&stubProvider{})

	req := httptest.NewRequest(http.MethodOptions, "/zero-shot", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PrometheusEndpoint(t *testing.T) {
	router := setupTestRouter(&stubProvider{})

	doRequest(router, http.MethodPost, "/zero-shot", `{"userIdea":"X"}`)

	w := doRequest(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "innopilot_http_requests_total"))
	assert.True(t, strings.Contains(w.Body.String(), "innopilot_generation_total"))
}

func TestRouter_APIMetricsEndpoint(t *testing.T) {
	router := setupTestRouter(&stubProvider{})

	w := doRequest(router, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", decode(t, w)["version"])
}

func TestRouter_PanicRecovered(t *testing.T) {
	router := setupTestRouter(&stubProvider{panics: true})

	w := doRequest(router, http.MethodPost, "/cot-prompt", `{"userIdea":"X"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w)["error"])
}

func TestRouter_GetNotAllowedOnStrategy(t *testing.T) {
	router := setupTestRouter(&stubProvider{})

	w := doRequest(router, http.MethodGet, "/zero-shot", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
