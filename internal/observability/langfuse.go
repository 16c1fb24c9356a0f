package observability

import (
	"context"
	"log"
	"time"

	"github.com/Conceptual-Machines/innopilot-api/internal/config"
	"github.com/Conceptual-Machines/innopilot-api/internal/llm"
	langfuse "github.com/henomis/langfuse-go"
	"github.com/henomis/langfuse-go/model"
)

// LangfuseClient wraps the Langfuse client with our configuration.
// A disabled client hands out no-op traces so callers never branch on it.
type LangfuseClient struct {
	client  *langfuse.Langfuse
	enabled bool
}

// InitializeLangfuse creates the Langfuse client.
// The SDK reads LANGFUSE_HOST, LANGFUSE_PUBLIC_KEY and LANGFUSE_SECRET_KEY from the environment.
func InitializeLangfuse(ctx context.Context, cfg *config.Config) *LangfuseClient {
	if !cfg.LangfuseEnabled || cfg.LangfuseSecretKey == "" {
		log.Println("⚠️  Langfuse not configured (LANGFUSE_ENABLED=false or LANGFUSE_SECRET_KEY not set)")
		return NewDisabledLangfuse()
	}

	lf := langfuse.New(ctx)
	log.Printf("✅ Langfuse initialized (host: %s)", cfg.LangfuseHost)

	return &LangfuseClient{
		client:  lf,
		enabled: true,
	}
}

// NewDisabledLangfuse returns a client that records nothing
func NewDisabledLangfuse() *LangfuseClient {
	return &LangfuseClient{enabled: false}
}

// IsEnabled returns whether Langfuse is enabled
func (c *LangfuseClient) IsEnabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Flush sends any queued events; called on shutdown
func (c *LangfuseClient) Flush(ctx context.Context) {
	if c.IsEnabled() {
		c.client.Flush(ctx)
	}
}

// StartTrace starts a new trace in Langfuse
func (c *LangfuseClient) StartTrace(name string, metadata map[string]interface{}) *Trace {
	if !c.IsEnabled() {
		return &Trace{enabled: false}
	}

	trace, err := c.client.Trace(&model.Trace{
		Name:     name,
		Metadata: metadata,
	})
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse trace: %v", err)
		return &Trace{enabled: false}
	}

	return &Trace{
		trace:   trace,
		enabled: true,
		client:  c.client,
	}
}

// Trace represents a Langfuse trace
type Trace struct {
	trace   *model.Trace
	enabled bool
	client  *langfuse.Langfuse
}

// Generation creates a new generation observation within the trace
func (t *Trace) Generation(name, modelName string, metadata map[string]interface{}) *Generation {
	if !t.enabled {
		return &Generation{enabled: false}
	}

	now := time.Now()
	gen, err := t.client.Generation(&model.Generation{
		TraceID:   t.trace.ID,
		Name:      name,
		Model:     modelName,
		StartTime: &now,
		Metadata:  metadata,
	}, nil)
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse generation: %v", err)
		return &Generation{enabled: false}
	}

	return &Generation{
		generation: gen,
		enabled:    true,
		client:     t.client,
	}
}

// Generation represents a Langfuse generation observation
type Generation struct {
	generation *model.Generation
	enabled    bool
	client     *langfuse.Langfuse
}

// Input sets the prompt segments sent to the model
func (g *Generation) Input(messages []llm.Message) {
	if g.enabled && g.generation != nil {
		g.generation.Input = messages
	}
}

// Output sets the generated text
func (g *Generation) Output(output string) {
	if g.enabled && g.generation != nil {
		g.generation.Output = output
	}
}

// Metadata merges metadata into the generation
func (g *Generation) Metadata(metadata map[string]interface{}) {
	if !g.enabled || g.generation == nil {
		return
	}
	existing, ok := g.generation.Metadata.(map[string]interface{})
	if !ok || existing == nil {
		existing = make(map[string]interface{}, len(metadata))
	}
	for k, v := range metadata {
		existing[k] = v
	}
	g.generation.Metadata = existing
}

// Usage sets token usage and the estimated cost
func (g *Generation) Usage(modelName string, usage llm.Usage) {
	if g.enabled && g.generation != nil {
		g.generation.Usage = model.Usage{
			Input:     usage.InputTokens,
			Output:    usage.OutputTokens,
			Total:     usage.TotalTokens,
			Unit:      model.ModelUsageUnitTokens,
			TotalCost: CalculateCost(modelName, usage),
		}
	}
}

// Fail marks the generation as errored and keeps the message in its metadata
func (g *Generation) Fail(err error) {
	if g.enabled && g.generation != nil && err != nil {
		g.generation.Level = model.ObservationLevel("ERROR")
		g.Metadata(map[string]interface{}{"error": err.Error()})
	}
}

// Finish completes the generation and queues it for sending
func (g *Generation) Finish() {
	if g.enabled && g.generation != nil && g.client != nil {
		now := time.Now()
		g.generation.EndTime = &now
		if _, err := g.client.GenerationEnd(g.generation); err != nil {
			log.Printf("⚠️  Failed to end Langfuse generation: %v", err)
		}
	}
}
