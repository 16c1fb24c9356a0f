package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/innopilot-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetWorkedExamples returns the fixed idea analyses used as few-shot examples, in order
func (l *Loader) GetWorkedExamples() []string {
	return []string{
		strings.TrimSpace(string(embedded.PetFitnessTrackerExampleTxt)),
		strings.TrimSpace(string(embedded.BlockchainLandRegistryExampleTxt)),
		strings.TrimSpace(string(embedded.VRMuseumToursExampleTxt)),
	}
}

// GetMentorSystemPrompt loads the mentor persona instructions
func (l *Loader) GetMentorSystemPrompt() string {
	return strings.TrimSpace(string(embedded.MentorSystemPromptTxt))
}
