package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/innopilot-api/internal/logger"
	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const (
	providerNameOpenAI = "openai"
	maxPreviewChars    = 200
)

// OpenAIProvider implements the Provider interface using OpenAI's Responses API
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client: &client,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Generate implements plain-text generation using OpenAI's Responses API
func (p *OpenAIProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🚀 OPENAI GENERATION REQUEST STARTED (Model: %s, segments: %d)", request.Model, len(request.Messages))

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := p.buildRequestParams(request)
	if len(params.Input.OfInputItemList) == 0 {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("no prompt content to send")
	}

	span := transaction.StartChild("openai.api_call")
	resp, err := p.client.Responses.New(ctx, params)
	apiDuration := time.Since(startTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	log.Printf("⏱️  OPENAI API CALL COMPLETED in %v", apiDuration)

	result, err := p.processResponsePlainText(resp)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	transaction.SetTag("success", "true")
	transaction.SetTag("output_type", "plain_text")
	return result, nil
}

// buildRequestParams converts a GenerationRequest to OpenAI-specific ResponseNewParams
func (p *OpenAIProvider) buildRequestParams(request *GenerationRequest) responses.ResponseNewParams {
	inputItems := responses.ResponseInputParam{}

	for _, msg := range request.Messages {
		if strings.TrimSpace(msg.Content) == "" {
			log.Printf("⚠️  Skipping empty %s segment", msg.Role)
			continue
		}

		var roleEnum responses.EasyInputMessageRole
		switch msg.Role {
		case RoleSystem:
			roleEnum = responses.EasyInputMessageRoleSystem
		default:
			roleEnum = responses.EasyInputMessageRoleUser
		}

		inputItems = append(inputItems,
			responses.ResponseInputItemParamOfMessage(msg.Content, roleEnum),
		)
	}

	if request.Sampling.TopK > 0 {
		logger.Debug("OpenAI does not support top_k, ignoring it", logger.Fields{
			"model": request.Model,
			"top_k": request.Sampling.TopK,
		})
	}

	return responses.ResponseNewParams{
		Model: request.Model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: inputItems,
		},
		Temperature: openai.Float(request.Sampling.Temperature),
		TopP:        openai.Float(request.Sampling.TopP),
	}
}

// processResponsePlainText extracts plain text output from an OpenAI response
func (p *OpenAIProvider) processResponsePlainText(resp *responses.Response) (*GenerationResponse, error) {
	textOutput := strings.TrimSpace(resp.OutputText())
	log.Printf("📥 OPENAI PLAIN TEXT RESPONSE: output_length=%d, tokens=%d",
		len(textOutput), resp.Usage.TotalTokens)

	if textOutput == "" {
		return nil, fmt.Errorf("openai response did not include any output text")
	}

	log.Printf("📝 OpenAI output preview: %s", truncateString(textOutput, maxPreviewChars))

	return &GenerationResponse{
		Text: textOutput,
		Usage: Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}, nil
}

// truncateString truncates a string to at most maxLen runes
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
