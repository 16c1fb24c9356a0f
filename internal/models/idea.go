package models

// Sampling defaults applied when a request leaves a parameter unset
const (
	DefaultTopP        = 0.9
	DefaultTopK        = 50
	DefaultTemperature = 0.7
)

// Detail levels understood by the dynamic strategy
const (
	DetailLevelSummary  = "summary"
	DetailLevelDetailed = "detailed"
)

// CategoryNotProvided is echoed back when the dynamic strategy receives no category
const CategoryNotProvided = "Not provided"

// IdeaRequest is the body accepted by every strategy endpoint.
// Sampling fields are pointers so an explicit zero can be told apart from an omitted value.
type IdeaRequest struct {
	UserIdea    string   `json:"userIdea"`
	Category    string   `json:"category"`
	DetailLevel string   `json:"detailLevel"`
	TopP        *float64 `json:"topP"`
	TopK        *int     `json:"topK"`
	Temperature *float64 `json:"temperature"`
}

// SamplingParams holds the resolved generation controls forwarded to the model
type SamplingParams struct {
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
	Temperature float64 `json:"temperature"`
}

// DefaultSamplingParams returns the fixed defaults shared by all strategies
func DefaultSamplingParams() SamplingParams {
	return SamplingParams{
		TopP:        DefaultTopP,
		TopK:        DefaultTopK,
		Temperature: DefaultTemperature,
	}
}

// ResolveSampling fills every unset sampling parameter with its default.
// Supplied values, including 0, are kept verbatim.
func (r IdeaRequest) ResolveSampling() SamplingParams {
	params := DefaultSamplingParams()
	if r.TopP != nil {
		params.TopP = *r.TopP
	}
	if r.TopK != nil {
		params.TopK = *r.TopK
	}
	if r.Temperature != nil {
		params.Temperature = *r.Temperature
	}
	return params
}

// WantsDetailedAnalysis reports whether the dynamic strategy should ask for a detailed answer
func (r IdeaRequest) WantsDetailedAnalysis() bool {
	return r.DetailLevel == DetailLevelDetailed
}

// EchoCategory returns the category to echo back, or the "Not provided" sentinel
func (r IdeaRequest) EchoCategory() string {
	if r.Category == "" {
		return CategoryNotProvided
	}
	return r.Category
}

// EchoDetailLevel returns the detail level to echo back, defaulting to summary
func (r IdeaRequest) EchoDetailLevel() string {
	if r.DetailLevel == "" {
		return DetailLevelSummary
	}
	return r.DetailLevel
}
