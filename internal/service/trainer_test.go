package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlpbridge/internal/compiler"
	"nlpbridge/internal/model"
)

func newTestTrainer(engine *EngineClient) *TrainerService {
	c := compiler.New(compiler.NewTableResolver(map[string]string{"number": "number"}))
	return NewTrainerService(c, engine, nil, "testbot", "en")
}

func orderAndGreetIntents() []*model.IntentSpec {
	number := &model.EntityTypeDescriptor{Name: "number", Kind: model.EntityBase}
	drink := &model.EntityTypeDescriptor{Name: "drink", Kind: model.EntityBase}
	return []*model.IntentSpec{
		{
			Name:              "Order",
			TrainingSentences: []string{"I want 2 coffee please"},
			Parameters: []*model.ParameterSpec{
				{Name: "Count", Entity: number, TextFragments: []string{"2"}},
				{Name: "Drink", Entity: drink, TextFragments: []string{"coffee"}},
			},
		},
		{
			Name:              "Greet",
			TrainingSentences: []string{"hello there", "good morning"},
		},
	}
}

func TestCompileBatch(t *testing.T) {
	trainer := newTestTrainer(nil)

	intents, entities, err := trainer.CompileBatch(orderAndGreetIntents())
	require.NoError(t, err)
	require.Len(t, intents, 2)

	// Batch output preserves intent order regardless of goroutine scheduling.
	assert.Equal(t, "Order", intents[0].Name)
	assert.Equal(t, "Greet", intents[1].Name)
	assert.Equal(t, []string{"I want %number% %OrderDrinkAny% please"}, intents[0].Examples)
	assert.Equal(t, []string{"hello there", "good morning"}, intents[1].Examples)

	require.Len(t, entities, 1)
	assert.Equal(t, "OrderDrinkAny", entities[0].Name)
}

func TestCompileBatch_AbortsOnPreconditionViolation(t *testing.T) {
	trainer := newTestTrainer(nil)
	broken := orderAndGreetIntents()
	broken = append(broken, &model.IntentSpec{TrainingSentences: []string{"no name"}})

	intents, entities, err := trainer.CompileBatch(broken)
	require.Error(t, err)
	var pe *compiler.PreconditionError
	assert.ErrorAs(t, err, &pe)
	assert.Nil(t, intents)
	assert.Nil(t, entities)
}

// Many intents bound to one unmapped Base descriptor compile concurrently:
// the first goroutine to hit the descriptor demotes it while the others are
// still resolving it. All kind accesses go through the resolver's lock, so
// this is stable under the race detector, and every intent ends up with its
// own synthesized entity.
func TestCompileBatch_SharedDescriptorDemotion(t *testing.T) {
	trainer := newTestTrainer(nil)

	topic := &model.EntityTypeDescriptor{Name: "topic", Kind: model.EntityBase}
	fragments := []string{"cats", "dogs", "birds", "fish", "mice", "owls", "bats", "foxes"}
	specs := make([]*model.IntentSpec, 0, len(fragments))
	for i, fragment := range fragments {
		specs = append(specs, &model.IntentSpec{
			Name:              fmt.Sprintf("Search%d", i),
			TrainingSentences: []string{"search for " + fragment + " today"},
			Parameters: []*model.ParameterSpec{
				{Name: "Topic", Entity: topic, TextFragments: []string{fragment}},
			},
		})
	}

	intents, entities, err := trainer.CompileBatch(specs)
	require.NoError(t, err)
	require.Len(t, intents, len(fragments))
	require.Len(t, entities, len(fragments))
	for i := range fragments {
		name := fmt.Sprintf("Search%dTopicAny", i)
		assert.Equal(t, []string{"search for %" + name + "% today"}, intents[i].Examples)
		assert.Equal(t, name, entities[i].Name)
	}
	assert.Equal(t, model.EntityAny, topic.Kind)
}

func TestTrainFromDefinition(t *testing.T) {
	var gotCorpus model.AgentCorpus
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCorpus))
		w.WriteHeader(http.StatusOK)
	})
	trainer := newTestTrainer(engine)

	def := &model.BotDefinition{
		Name:   "barista",
		Locale: "en",
		EntityTypes: []model.BotEntityType{
			{Name: "number", Kind: "base"},
			{Name: "drink", Kind: "base"},
		},
		Intents: []model.BotIntent{
			{
				Name:      "Order",
				Sentences: []string{"I want a coffee please", "I want a coffee now"},
				Parameters: []model.BotParameter{
					{Name: "Drink", EntityType: "drink", Fragments: []string{"coffee"}},
				},
			},
		},
	}

	report, err := trainer.TrainFromDefinition(context.Background(), def)
	require.NoError(t, err)
	assert.Equal(t, "trained", report.Status)
	assert.Equal(t, 1, report.IntentCount)
	assert.Equal(t, 2, report.ExampleCount)
	assert.Equal(t, 1, report.EntityCount)

	require.Len(t, gotCorpus.Entities, 1)
	assert.Equal(t, "OrderDrinkAny", gotCorpus.Entities[0].Name)
	assert.Equal(t, "trim", gotCorpus.Entities[0].Type)
	require.NotNil(t, gotCorpus.Entities[0].Between)
	assert.Equal(t, []string{"a", "a"}, gotCorpus.Entities[0].Between.Left)
	assert.Equal(t, []string{"please", "now"}, gotCorpus.Entities[0].Between.Right)
}

func TestTrainFromDefinition_EngineFailure(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("agent busy"))
	})
	trainer := newTestTrainer(engine)

	def := &model.BotDefinition{
		Name:    "barista",
		Intents: []model.BotIntent{{Name: "Greet", Sentences: []string{"hi"}}},
	}

	_, err := trainer.TrainFromDefinition(context.Background(), def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent busy")
}
