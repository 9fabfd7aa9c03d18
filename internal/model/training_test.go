package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAgentCorpus(t *testing.T) {
	intents := []CompiledIntent{
		{
			Name:           "Order",
			Examples:       []string{"I want a %OrderDrinkAny% please"},
			ParameterSlots: map[string]string{"Drink": "OrderDrinkAny"},
		},
	}
	entities := []SynthesizedEntity{
		{
			Name: "OrderDrinkAny",
			Kind: SynthTrim,
			Between: &BetweenCondition{
				Left:  []string{"a"},
				Right: []string{"please"},
			},
		},
		{
			Name:     "FreeTextAny",
			Kind:     SynthRegex,
			Patterns: []string{"/.+/"},
		},
	}

	corpus := NewAgentCorpus("en", intents, entities)
	assert.Equal(t, "en", corpus.Locale)
	require.Len(t, corpus.Intents, 1)
	assert.Equal(t, map[string]string{"Drink": "OrderDrinkAny"}, corpus.Intents[0].Slots)

	require.Len(t, corpus.Entities, 2)
	trim := corpus.Entities[0]
	assert.Equal(t, "trim", trim.Type)
	require.NotNil(t, trim.Between)
	assert.Equal(t, []string{"a"}, trim.Between.Left)
	assert.Equal(t, []string{"please"}, trim.Between.Right)
	assert.Empty(t, trim.Regex)

	regex := corpus.Entities[1]
	assert.Equal(t, "regex", regex.Type)
	assert.Equal(t, []string{"/.+/"}, regex.Regex)
	assert.Nil(t, regex.Between)
}

// Single-sided stop lists map onto the engine's afterLast/beforeLast trim
// options: a left neighbor bounds the value from the left, so the value
// starts after its last occurrence.
func TestNewAgentCorpus_TrimSides(t *testing.T) {
	entities := []SynthesizedEntity{
		{
			Name:       "OrderDrinkAny",
			Kind:       SynthTrim,
			LeftStops:  []string{"a", "the"},
			RightStops: []string{"please"},
		},
	}

	corpus := NewAgentCorpus("en", nil, entities)
	require.Len(t, corpus.Entities, 1)
	assert.Equal(t, []string{"a", "the"}, corpus.Entities[0].AfterLast)
	assert.Equal(t, []string{"please"}, corpus.Entities[0].BeforeLast)
}

func TestEntityKindString(t *testing.T) {
	assert.Equal(t, "base", EntityBase.String())
	assert.Equal(t, "custom", EntityCustom.String())
	assert.Equal(t, "any", EntityAny.String())
}
