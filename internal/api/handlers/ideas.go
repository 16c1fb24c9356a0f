package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Conceptual-Machines/innopilot-api/internal/logger"
	"github.com/Conceptual-Machines/innopilot-api/internal/models"
	"github.com/Conceptual-Machines/innopilot-api/internal/prompt"
	"github.com/Conceptual-Machines/innopilot-api/internal/services"
	"github.com/gin-gonic/gin"
)

// IdeaGateway runs one strategy against one idea
type IdeaGateway interface {
	Handle(ctx context.Context, strategy prompt.Strategy, req models.IdeaRequest) (*services.IdeaResult, error)
}

type IdeaHandler struct {
	gateway IdeaGateway
}

func NewIdeaHandler(gateway IdeaGateway) *IdeaHandler {
	return &IdeaHandler{gateway: gateway}
}

// Handle returns the handler serving one strategy endpoint
func (h *IdeaHandler) Handle(strategy prompt.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.IdeaRequest
		// An empty body is the same as a request without userIdea
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
				return
			}
		}

		c.Set("strategy", strategy.String())

		result, err := h.gateway.Handle(c.Request.Context(), strategy, req)
		if err != nil {
			h.respondError(c, strategy, err)
			return
		}

		c.JSON(http.StatusOK, ideaResponse(result))
	}
}

func (h *IdeaHandler) respondError(c *gin.Context, strategy prompt.Strategy, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}

	fields := logger.WithContext(c)
	fields["strategy"] = strategy.String()
	logger.Warn("Strategy request failed", fields)

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func ideaResponse(result *services.IdeaResult) gin.H {
	body := gin.H{
		"idea":                      result.Idea,
		"top_p":                     result.Sampling.TopP,
		"top_k":                     result.Sampling.TopK,
		"temperature":               result.Sampling.Temperature,
		result.Strategy.ResultKey(): result.Text,
	}
	if result.Strategy.EchoesDynamicFields() {
		body["category"] = result.Category
		body["detailLevel"] = result.DetailLevel
	}
	return body
}
