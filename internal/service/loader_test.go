package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlpbridge/internal/model"
)

const botYAML = `
name: barista
locale: en
entity_types:
  - name: number
    kind: base
  - name: drink
    kind: base
  - name: city
    kind: custom
intents:
  - name: Order
    sentences:
      - I want a coffee please
      - I want 2 coffee now
    parameters:
      - name: Count
        entity_type: number
        fragments: ["2"]
      - name: Drink
        entity_type: drink
        fragments: ["coffee"]
  - name: Weather
    sentences:
      - weather in Paris
    parameters:
      - name: City
        entity_type: city
        fragments: ["Paris"]
`

func writeBotFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBotDefinition(t *testing.T) {
	def, err := LoadBotDefinition(writeBotFile(t, botYAML))
	require.NoError(t, err)
	assert.Equal(t, "barista", def.Name)
	assert.Len(t, def.EntityTypes, 3)
	require.Len(t, def.Intents, 2)
	assert.Equal(t, "Order", def.Intents[0].Name)
	assert.Len(t, def.Intents[0].Parameters, 2)
}

func TestLoadBotDefinition_MissingFile(t *testing.T) {
	_, err := LoadBotDefinition(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuildIntentSpecs_SharedDescriptors(t *testing.T) {
	def, err := LoadBotDefinition(writeBotFile(t, botYAML))
	require.NoError(t, err)

	intents, err := BuildIntentSpecs(def)
	require.NoError(t, err)
	require.Len(t, intents, 2)

	order := intents[0]
	assert.Equal(t, model.EntityBase, order.Parameters[0].Entity.Kind)
	assert.Equal(t, model.EntityCustom, intents[1].Parameters[0].Entity.Kind)
}

// Two parameters referencing the same entity type hold the same descriptor
// instance, so demotion during compilation is visible everywhere.
func TestBuildIntentSpecs_DescriptorIdentity(t *testing.T) {
	def := &model.BotDefinition{
		Name:        "bot",
		EntityTypes: []model.BotEntityType{{Name: "topic", Kind: "base"}},
		Intents: []model.BotIntent{
			{
				Name:      "Search",
				Sentences: []string{"search cats"},
				Parameters: []model.BotParameter{
					{Name: "A", EntityType: "topic", Fragments: []string{"cats"}},
				},
			},
			{
				Name:      "Explain",
				Sentences: []string{"explain dogs"},
				Parameters: []model.BotParameter{
					{Name: "B", EntityType: "topic", Fragments: []string{"dogs"}},
				},
			},
		},
	}

	intents, err := BuildIntentSpecs(def)
	require.NoError(t, err)
	assert.Same(t, intents[0].Parameters[0].Entity, intents[1].Parameters[0].Entity)
}

func TestBuildIntentSpecs_UnknownEntityType(t *testing.T) {
	def := &model.BotDefinition{
		Name: "bot",
		Intents: []model.BotIntent{
			{
				Name:      "Search",
				Sentences: []string{"search cats"},
				Parameters: []model.BotParameter{
					{Name: "A", EntityType: "topic", Fragments: []string{"cats"}},
				},
			},
		},
	}

	_, err := BuildIntentSpecs(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown entity type "topic"`)
}

func TestBuildIntentSpecs_BadKind(t *testing.T) {
	def := &model.BotDefinition{
		Name:        "bot",
		EntityTypes: []model.BotEntityType{{Name: "topic", Kind: "fancy"}},
	}

	_, err := BuildIntentSpecs(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown entity kind "fancy"`)
}
