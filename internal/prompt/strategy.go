package prompt

// Strategy names one prompt-construction approach
type Strategy string

const (
	StrategyZeroShot    Strategy = "zero-shot"
	StrategyOneShot     Strategy = "one-shot"
	StrategyMultiShot   Strategy = "multi-shot"
	StrategyCoT         Strategy = "cot"
	StrategyDynamic     Strategy = "dynamic"
	StrategySystemUser  Strategy = "system-user"
	StrategyTemperature Strategy = "temperature"
)

type strategyInfo struct {
	path      string
	resultKey string
}

var strategies = map[Strategy]strategyInfo{
	StrategyZeroShot:    {path: "/zero-shot", resultKey: "zero_shot_response"},
	StrategyOneShot:     {path: "/one-shot", resultKey: "one_shot_response"},
	StrategyMultiShot:   {path: "/multi-shot", resultKey: "multi_shot_response"},
	StrategyCoT:         {path: "/cot-prompt", resultKey: "cot_response"},
	StrategyDynamic:     {path: "/dynamic-prompt", resultKey: "dynamic_prompt_response"},
	StrategySystemUser:  {path: "/system-user-prompt", resultKey: "system_user_prompt_response"},
	StrategyTemperature: {path: "/temperature-prompt", resultKey: "temperature_response"},
}

// AllStrategies returns every strategy in a stable order
func AllStrategies() []Strategy {
	return []Strategy{
		StrategyZeroShot,
		StrategyOneShot,
		StrategyMultiShot,
		StrategyCoT,
		StrategyDynamic,
		StrategySystemUser,
		StrategyTemperature,
	}
}

// Path returns the HTTP route serving the strategy
func (s Strategy) Path() string {
	return strategies[s].path
}

// ResultKey returns the response field that carries the generated text
func (s Strategy) ResultKey() string {
	return strategies[s].resultKey
}

// EchoesDynamicFields reports whether category and detailLevel are echoed in the response
func (s Strategy) EchoesDynamicFields() bool {
	return s == StrategyDynamic
}

func (s Strategy) String() string {
	return string(s)
}
