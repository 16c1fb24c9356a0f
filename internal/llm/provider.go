package llm

import (
	"context"
)

// Message roles
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Provider defines the interface for LLM providers.
// Implementations must be safe for concurrent use: one instance is shared by all requests.
type Provider interface {
	// Generate sends the ordered messages to the model and returns its text output
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// Message is one role-tagged text segment of a prompt
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage creates a system-role message
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage creates a user-role message
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Sampling contains the generation controls forwarded to the model
type Sampling struct {
	Temperature float64
	TopP        float64
	TopK        int
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model    string
	Messages []Message
	Sampling Sampling
}

// Usage holds token counts reported by the provider
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}
