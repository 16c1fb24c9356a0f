package observability

import (
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/innopilot-api/internal/llm"
)

// Pricing constants (USD per 1K tokens)
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	gemini25FlashInputPrice  = 0.0003
	gemini25FlashOutputPrice = 0.0025

	gemini25ProInputPrice  = 0.00125
	gemini25ProOutputPrice = 0.01

	gpt41MiniInputPrice  = 0.0004
	gpt41MiniOutputPrice = 0.0016

	gpt4oMiniInputPrice  = 0.00015
	gpt4oMiniOutputPrice = 0.0006
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// PricingTable contains pricing for the models the gateway is expected to use
var PricingTable = map[string]ModelPricing{
	"gemini-2.5-flash": {
		InputPricePer1K:  gemini25FlashInputPrice,
		OutputPricePer1K: gemini25FlashOutputPrice,
	},
	"gemini-2.5-pro": {
		InputPricePer1K:  gemini25ProInputPrice,
		OutputPricePer1K: gemini25ProOutputPrice,
	},
	"gpt-4.1-mini": {
		InputPricePer1K:  gpt41MiniInputPrice,
		OutputPricePer1K: gpt41MiniOutputPrice,
	},
	"gpt-4o-mini": {
		InputPricePer1K:  gpt4oMiniInputPrice,
		OutputPricePer1K: gpt4oMiniOutputPrice,
	},
}

// CalculateCost estimates the USD cost of a call. Unknown models cost 0.
func CalculateCost(model string, usage llm.Usage) float64 {
	pricing, exists := PricingTable[strings.ToLower(model)]
	if !exists {
		return 0
	}

	inputCost := (float64(usage.InputTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(usage.OutputTokens) / tokensPerKilo) * pricing.OutputPricePer1K

	return inputCost + outputCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', costFormatPrecision, 64)
}
