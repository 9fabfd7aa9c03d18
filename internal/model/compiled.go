package model

// SynthKind selects which accumulator fields of a SynthesizedEntity are
// populated. The two are mutually exclusive.
type SynthKind string

const (
	SynthTrim  SynthKind = "trim"
	SynthRegex SynthKind = "regex"
)

// BetweenCondition bounds a catch-all entity on both sides. Left and Right
// are parallel, non-deduplicated lists: index i's left token was observed in
// the same sentence as index i's right token.
type BetweenCondition struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// SynthesizedEntity is a catch-all entity built from the context words
// around a degraded parameter. Its name is intentName + parameterName +
// "Any", which makes it globally unique across intents.
type SynthesizedEntity struct {
	Name string    `json:"name"`
	Kind SynthKind `json:"kind"`

	// Trim accumulators. LeftStops holds tokens seen immediately before the
	// fragment when no token followed it; RightStops the reverse.
	LeftStops  []string          `json:"left_stops,omitempty"`
	RightStops []string          `json:"right_stops,omitempty"`
	Between    *BetweenCondition `json:"between,omitempty"`

	// Regex patterns.
	Patterns []string `json:"patterns,omitempty"`
}

// CompiledIntent is the flat training form of one intent: annotated example
// sentences plus the parameter-name to slot-id mapping. Together with the
// synthesized entity list it is the wire contract with the training
// exporter.
type CompiledIntent struct {
	Name           string            `json:"name"`
	Examples       []string          `json:"examples"`
	ParameterSlots map[string]string `json:"parameter_slots"`
}
