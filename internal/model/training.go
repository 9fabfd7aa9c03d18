package model

// AgentCorpus is the payload submitted to the engine's training endpoint.
type AgentCorpus struct {
	Locale   string        `json:"locale"`
	Intents  []AgentIntent `json:"intents"`
	Entities []AgentEntity `json:"entities,omitempty"`
}

// AgentIntent is one intent in engine form.
type AgentIntent struct {
	Name     string            `json:"name"`
	Examples []string          `json:"examples"`
	Slots    map[string]string `json:"slots,omitempty"`
}

// AgentBetween mirrors the engine's between trim option.
type AgentBetween struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// AgentEntity is a synthesized entity in engine form. Trim entities bound
// the match with the tokens around it: the value sits after the last left
// neighbor (afterLast), before the last right neighbor (beforeLast), or
// between the two.
type AgentEntity struct {
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	AfterLast  []string      `json:"afterLast,omitempty"`
	BeforeLast []string      `json:"beforeLast,omitempty"`
	Between    *AgentBetween `json:"between,omitempty"`
	Regex      []string      `json:"regex,omitempty"`
}

// TrainReport summarizes one compile-and-train run for the REST caller.
type TrainReport struct {
	Agent        string              `json:"agent"`
	Status       string              `json:"status"`
	IntentCount  int                 `json:"intent_count"`
	ExampleCount int                 `json:"example_count"`
	EntityCount  int                 `json:"entity_count"`
	DurationMs   int                 `json:"duration_ms"`
	Intents      []CompiledIntent    `json:"intents"`
	Entities     []SynthesizedEntity `json:"entities,omitempty"`
}

// NewAgentCorpus converts compiled output into the engine training payload.
func NewAgentCorpus(locale string, intents []CompiledIntent, entities []SynthesizedEntity) *AgentCorpus {
	corpus := &AgentCorpus{Locale: locale}
	for _, in := range intents {
		corpus.Intents = append(corpus.Intents, AgentIntent{
			Name:     in.Name,
			Examples: in.Examples,
			Slots:    in.ParameterSlots,
		})
	}
	for _, e := range entities {
		corpus.Entities = append(corpus.Entities, newAgentEntity(e))
	}
	return corpus
}

func newAgentEntity(e SynthesizedEntity) AgentEntity {
	out := AgentEntity{Name: e.Name, Type: string(e.Kind)}
	switch e.Kind {
	case SynthRegex:
		out.Regex = e.Patterns
	case SynthTrim:
		out.AfterLast = e.LeftStops
		out.BeforeLast = e.RightStops
		if e.Between != nil {
			out.Between = &AgentBetween{Left: e.Between.Left, Right: e.Between.Right}
		}
	}
	return out
}
