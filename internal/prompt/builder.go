package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/innopilot-api/internal/llm"
	"github.com/Conceptual-Machines/innopilot-api/internal/models"
)

const (
	analyzeInSameFormat = "Now analyze the following startup idea in the same format:"

	dynamicDetailedClause = "Give a very detailed validation, competitor analysis, and step-by-step roadmap."
	dynamicSummaryClause  = "Give a short summary validation and roadmap."
)

// Builder assembles the prompt for each strategy. It holds no per-request state.
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{
		loader: NewPromptLoader(),
	}
}

// Build returns the ordered, role-tagged segments for the given strategy.
// Every strategy yields a single user segment except system-user, which yields
// the mentor persona followed by the user instruction.
func (b *Builder) Build(strategy Strategy, req models.IdeaRequest, sampling models.SamplingParams) ([]llm.Message, error) {
	idea := req.UserIdea

	switch strategy {
	case StrategyZeroShot:
		return single(b.zeroShot(idea)), nil
	case StrategyOneShot:
		return single(b.fewShot(idea, b.loader.GetWorkedExamples()[:1])), nil
	case StrategyMultiShot:
		return single(b.fewShot(idea, b.loader.GetWorkedExamples())), nil
	case StrategyCoT:
		return single(b.chainOfThought(idea)), nil
	case StrategyDynamic:
		return single(b.dynamic(req)), nil
	case StrategySystemUser:
		return []llm.Message{
			llm.SystemMessage(b.loader.GetMentorSystemPrompt()),
			llm.UserMessage("Validate the following startup idea:\nStartup Idea: " + idea),
		}, nil
	case StrategyTemperature:
		return single(b.temperatureFocused(idea, sampling.Temperature)), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", strategy)
	}
}

func single(content string) []llm.Message {
	return []llm.Message{llm.UserMessage(content)}
}

func (b *Builder) zeroShot(idea string) string {
	return "Validate this startup idea in detail.\n" +
		"Cover feasibility, potential competitors, and a basic execution roadmap.\n" +
		"Startup Idea: " + idea
}

// fewShot lists the worked examples and then asks for the same format.
// A single example is labelled "Example:", several are numbered.
func (b *Builder) fewShot(idea string, examples []string) string {
	var sb strings.Builder

	for i, example := range examples {
		if len(examples) == 1 {
			sb.WriteString("Example:\n")
		} else {
			fmt.Fprintf(&sb, "Example %d:\n", i+1)
		}
		sb.WriteString(example)
		sb.WriteString("\n\n")
	}

	sb.WriteString(analyzeInSameFormat + "\n")
	sb.WriteString("Input: \"" + idea + "\"\n")
	sb.WriteString("Output:")

	return sb.String()
}

func (b *Builder) chainOfThought(idea string) string {
	return "You are a startup mentor.\n" +
		"Analyze this idea step by step (reasoning), then provide the final summary.\n\n" +
		"Startup Idea: \"" + idea + "\"\n\n" +
		"Format:\n" +
		"Reasoning: [Detailed thought process step by step]\n" +
		"Final Answer: [Validation, Competitors, Roadmap]"
}

func (b *Builder) dynamic(req models.IdeaRequest) string {
	prompt := "Analyze this startup idea: \"" + req.UserIdea + "\"."

	if req.Category != "" {
		prompt += "\nCategory: " + req.Category + "."
	}

	if req.WantsDetailedAnalysis() {
		prompt += "\n" + dynamicDetailedClause
	} else {
		prompt += "\n" + dynamicSummaryClause
	}

	return prompt
}

// temperatureFocused keeps the zero-shot wording; the temperature itself is what varies the output
func (b *Builder) temperatureFocused(idea string, temperature float64) string {
	return b.zeroShot(idea) + "\n\n" +
		"This analysis is generated with temperature " + strconv.FormatFloat(temperature, 'f', -1, 64) + ". " +
		"Lower temperatures keep the answer focused and deterministic, higher temperatures make it more creative."
}
