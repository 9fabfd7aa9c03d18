package model

// BotDefinition is the source form of a bot, either loaded from a YAML file
// at startup or posted inline as JSON. Entity types are declared once and
// referenced by name from parameters, so every reference resolves to one
// shared descriptor.
type BotDefinition struct {
	Name        string          `json:"name" yaml:"name"`
	Locale      string          `json:"locale" yaml:"locale"`
	EntityTypes []BotEntityType `json:"entity_types" yaml:"entity_types"`
	Intents     []BotIntent     `json:"intents" yaml:"intents"`
}

// BotEntityType declares an abstract entity type. Kind is one of "base",
// "custom", "any".
type BotEntityType struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
}

// BotIntent is one intent definition in source form.
type BotIntent struct {
	Name       string         `json:"name" yaml:"name"`
	Sentences  []string       `json:"sentences" yaml:"sentences"`
	Parameters []BotParameter `json:"parameters" yaml:"parameters"`
}

// BotParameter binds a named slot to an entity type and the literal
// fragments marking it inside the sentences.
type BotParameter struct {
	Name       string   `json:"name" yaml:"name"`
	EntityType string   `json:"entity_type" yaml:"entity_type"`
	Fragments  []string `json:"fragments" yaml:"fragments"`
}
