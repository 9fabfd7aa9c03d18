package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlpbridge/internal/model"
)

func TestAnyEntitySet_WholeSentenceBecomesRegex(t *testing.T) {
	set := newAnyEntitySet("Free")
	name := set.accumulate("Text", "", "")
	assert.Equal(t, "FreeTextAny", name)

	entities := set.list()
	require.Len(t, entities, 1)
	assert.Equal(t, model.SynthRegex, entities[0].Kind)
	assert.Equal(t, []string{"/.+/"}, entities[0].Patterns)
}

func TestAnyEntitySet_SingleSidedAccumulation(t *testing.T) {
	set := newAnyEntitySet("Order")
	set.accumulate("Drink", "a", "")
	set.accumulate("Drink", "the", "")

	entities := set.list()
	require.Len(t, entities, 1)
	assert.Equal(t, model.SynthTrim, entities[0].Kind)
	assert.Equal(t, []string{"a", "the"}, entities[0].LeftStops)
	assert.Empty(t, entities[0].RightStops)
	assert.Nil(t, entities[0].Between)
}

// Opposite single sides accumulate independently; they never merge into a
// between record on their own.
func TestAnyEntitySet_OppositeSidesDoNotMerge(t *testing.T) {
	set := newAnyEntitySet("Order")
	set.accumulate("Drink", "a", "")
	set.accumulate("Drink", "", "please")

	entities := set.list()
	require.Len(t, entities, 1)
	assert.Equal(t, []string{"a"}, entities[0].LeftStops)
	assert.Equal(t, []string{"please"}, entities[0].RightStops)
	assert.Nil(t, entities[0].Between)
}

// The first occurrence with both sides present upgrades the entry to a
// between record. The record starts fresh; the single-sided stop lists keep
// their prior entries.
func TestAnyEntitySet_UpgradeToBetween(t *testing.T) {
	set := newAnyEntitySet("Order")
	set.accumulate("Drink", "a", "")
	set.accumulate("Drink", "some", "please")
	set.accumulate("Drink", "a", "now")

	entities := set.list()
	require.Len(t, entities, 1)
	e := entities[0]
	require.NotNil(t, e.Between)
	assert.Equal(t, []string{"some", "a"}, e.Between.Left)
	assert.Equal(t, []string{"please", "now"}, e.Between.Right)
	assert.Equal(t, []string{"a"}, e.LeftStops)
}

func TestAnyEntitySet_BetweenKeepsDuplicates(t *testing.T) {
	set := newAnyEntitySet("Order")
	set.accumulate("Drink", "a", "please")
	set.accumulate("Drink", "a", "now")

	entities := set.list()
	require.Len(t, entities, 1)
	require.NotNil(t, entities[0].Between)
	assert.Equal(t, []string{"a", "a"}, entities[0].Between.Left)
	assert.Equal(t, []string{"please", "now"}, entities[0].Between.Right)
}

// A whole-sentence occurrence replaces whatever trim state was accumulated.
func TestAnyEntitySet_RegexReplacesTrim(t *testing.T) {
	set := newAnyEntitySet("Order")
	set.accumulate("Drink", "a", "please")
	set.accumulate("Drink", "", "")

	entities := set.list()
	require.Len(t, entities, 1)
	assert.Equal(t, model.SynthRegex, entities[0].Kind)
	assert.Equal(t, []string{"/.+/"}, entities[0].Patterns)
	assert.Nil(t, entities[0].Between)
}

func TestAnyEntitySet_IndependentParameters(t *testing.T) {
	set := newAnyEntitySet("Order")
	set.accumulate("Drink", "a", "")
	set.accumulate("Size", "", "cup")

	entities := set.list()
	require.Len(t, entities, 2)
	assert.Equal(t, "OrderDrinkAny", entities[0].Name)
	assert.Equal(t, "OrderSizeAny", entities[1].Name)
}
