package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nlpbridge/internal/model"
)

// LoadBotDefinition reads a YAML bot definition from disk.
func LoadBotDefinition(path string) (*model.BotDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bot definition: %w", err)
	}
	def := &model.BotDefinition{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("failed to parse bot definition: %w", err)
	}
	return def, nil
}

// BuildIntentSpecs resolves a bot definition into compiler inputs. Entity
// types are instantiated once and shared by pointer across every parameter
// and intent referencing them, so a demotion during compilation is visible
// bot-wide.
func BuildIntentSpecs(def *model.BotDefinition) ([]*model.IntentSpec, error) {
	registry := make(map[string]*model.EntityTypeDescriptor, len(def.EntityTypes))
	for _, et := range def.EntityTypes {
		if et.Name == "" {
			return nil, fmt.Errorf("bot %q: entity type with empty name", def.Name)
		}
		kind, err := parseEntityKind(et.Kind)
		if err != nil {
			return nil, fmt.Errorf("bot %q: entity type %q: %w", def.Name, et.Name, err)
		}
		registry[et.Name] = &model.EntityTypeDescriptor{Name: et.Name, Kind: kind}
	}

	intents := make([]*model.IntentSpec, 0, len(def.Intents))
	for _, in := range def.Intents {
		resolved := &model.IntentSpec{
			Name:              in.Name,
			TrainingSentences: append([]string(nil), in.Sentences...),
		}
		for _, p := range in.Parameters {
			desc, ok := registry[p.EntityType]
			if !ok {
				return nil, fmt.Errorf("intent %q: parameter %q references unknown entity type %q",
					in.Name, p.Name, p.EntityType)
			}
			resolved.Parameters = append(resolved.Parameters, &model.ParameterSpec{
				Name:          p.Name,
				Entity:        desc,
				TextFragments: append([]string(nil), p.Fragments...),
			})
		}
		intents = append(intents, resolved)
	}
	return intents, nil
}

func parseEntityKind(kind string) (model.EntityKind, error) {
	switch kind {
	case "base", "":
		return model.EntityBase, nil
	case "custom":
		return model.EntityCustom, nil
	case "any":
		return model.EntityAny, nil
	}
	return 0, fmt.Errorf("unknown entity kind %q", kind)
}
