package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/innopilot-api/internal/llm"
	"github.com/Conceptual-Machines/innopilot-api/internal/logger"
	"github.com/Conceptual-Machines/innopilot-api/internal/metrics"
	"github.com/Conceptual-Machines/innopilot-api/internal/models"
	"github.com/Conceptual-Machines/innopilot-api/internal/observability"
	"github.com/Conceptual-Machines/innopilot-api/internal/prompt"
)

const defaultGenerationTimeout = 60 * time.Second

// GenerationRecorder receives the outcome of every model call
type GenerationRecorder interface {
	RecordGeneration(ctx context.Context, g metrics.Generation)
}

// IdeaResult is the outcome of one strategy run
type IdeaResult struct {
	Strategy    prompt.Strategy
	Idea        string
	Category    string
	DetailLevel string
	Sampling    models.SamplingParams
	Text        string
}

// PromptGateway turns an idea request into exactly one model call.
// It holds no per-request state and is safe for concurrent use.
type PromptGateway struct {
	provider llm.Provider
	model    string
	timeout  time.Duration
	builder  *prompt.Builder
	tracer   *observability.LangfuseClient
	recorder GenerationRecorder
}

// NewPromptGateway wires the gateway. tracer and recorder may be nil.
func NewPromptGateway(
	provider llm.Provider,
	model string,
	timeout time.Duration,
	tracer *observability.LangfuseClient,
	recorder GenerationRecorder,
) *PromptGateway {
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &PromptGateway{
		provider: provider,
		model:    model,
		timeout:  timeout,
		builder:  prompt.NewPromptBuilder(),
		tracer:   tracer,
		recorder: recorder,
	}
}

// ProviderName returns the name of the configured provider
func (g *PromptGateway) ProviderName() string {
	return g.provider.Name()
}

// Model returns the configured model name
func (g *PromptGateway) Model() string {
	return g.model
}

// Handle validates the request, builds the strategy prompt and calls the model once
func (g *PromptGateway) Handle(ctx context.Context, strategy prompt.Strategy, req models.IdeaRequest) (*IdeaResult, error) {
	if req.UserIdea == "" {
		return nil, ErrMissingIdea
	}

	sampling := req.ResolveSampling()

	messages, err := g.builder.Build(strategy, req, sampling)
	if err != nil {
		return nil, &GenerationError{Strategy: strategy.String(), Err: err}
	}

	trace := g.tracer.StartTrace(strategy.String(), map[string]interface{}{
		"strategy": strategy.String(),
		"provider": g.provider.Name(),
	})
	generation := trace.Generation(strategy.String(), g.model, map[string]interface{}{
		"top_p":       sampling.TopP,
		"top_k":       sampling.TopK,
		"temperature": sampling.Temperature,
	})
	generation.Input(messages)
	defer generation.Finish()

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	startTime := time.Now()
	resp, err := g.provider.Generate(callCtx, &llm.GenerationRequest{
		Model:    g.model,
		Messages: messages,
		Sampling: llm.Sampling{
			Temperature: sampling.Temperature,
			TopP:        sampling.TopP,
			TopK:        sampling.TopK,
		},
	})
	duration := time.Since(startTime)

	fields := logger.Fields{
		"strategy":    strategy.String(),
		"provider":    g.provider.Name(),
		"model":       g.model,
		"duration_ms": duration.Milliseconds(),
	}

	generation.Metadata(map[string]interface{}{
		"provider":    g.provider.Name(),
		"strategy":    strategy.String(),
		"duration_ms": duration.Milliseconds(),
	})

	if err == nil && resp == nil {
		err = errors.New("model returned no response")
	}
	if err != nil {
		// Only name our own limit when our timer fired, not the caller's deadline
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("generation timed out after %s", g.timeout)
		}
		generation.Fail(err)
		g.record(ctx, strategy, duration, false, llm.Usage{})
		logger.Error("Generation failed", err, fields)
		return nil, &GenerationError{Strategy: strategy.String(), Err: err}
	}

	generation.Output(resp.Text)
	generation.Usage(g.model, resp.Usage)
	g.record(ctx, strategy, duration, true, resp.Usage)

	fields["output_tokens"] = resp.Usage.OutputTokens
	fields["cost"] = observability.FormatCost(observability.CalculateCost(g.model, resp.Usage))
	logger.Info("Generation completed", fields)

	return &IdeaResult{
		Strategy:    strategy,
		Idea:        req.UserIdea,
		Category:    req.EchoCategory(),
		DetailLevel: req.EchoDetailLevel(),
		Sampling:    sampling,
		Text:        resp.Text,
	}, nil
}

func (g *PromptGateway) record(ctx context.Context, strategy prompt.Strategy, d time.Duration, success bool, usage llm.Usage) {
	if g.recorder == nil {
		return
	}
	g.recorder.RecordGeneration(ctx, metrics.Generation{
		Strategy:     strategy.String(),
		Provider:     g.provider.Name(),
		Model:        g.model,
		Duration:     d,
		Success:      success,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
	})
}
