package service

import (
	"context"
	"log"
	"sync"
	"time"

	"nlpbridge/internal/compiler"
	"nlpbridge/internal/model"
	"nlpbridge/internal/repository"
)

// TrainerService compiles intent batches into the engine corpus and drives
// the training endpoint.
type TrainerService struct {
	compiler *compiler.Compiler
	engine   *EngineClient
	repo     *repository.PostgresRepository
	agent    string
	locale   string
}

// NewTrainerService creates a new trainer. repo may be nil when monitoring
// storage is disabled.
func NewTrainerService(c *compiler.Compiler, engine *EngineClient, repo *repository.PostgresRepository, agent, locale string) *TrainerService {
	return &TrainerService{
		compiler: c,
		engine:   engine,
		repo:     repo,
		agent:    agent,
		locale:   locale,
	}
}

// CompileBatch compiles every intent, one goroutine per intent. Each worker
// owns an intent-local accumulator; results land in per-intent slots and the
// batch-wide entity list is assembled only after all workers have finished,
// so no shared collection is touched concurrently. Any precondition
// violation aborts the whole batch.
func (s *TrainerService) CompileBatch(intents []*model.IntentSpec) ([]model.CompiledIntent, []model.SynthesizedEntity, error) {
	compiled := make([]*model.CompiledIntent, len(intents))
	perIntent := make([][]model.SynthesizedEntity, len(intents))
	errs := make([]error, len(intents))

	var wg sync.WaitGroup
	for i, intent := range intents {
		wg.Add(1)
		go func(i int, intent *model.IntentSpec) {
			defer wg.Done()
			compiled[i], perIntent[i], errs[i] = s.compiler.CompileIntent(intent)
		}(i, intent)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}

	outIntents := make([]model.CompiledIntent, 0, len(intents))
	var outEntities []model.SynthesizedEntity
	for i := range intents {
		outIntents = append(outIntents, *compiled[i])
		outEntities = append(outEntities, perIntent[i]...)
	}
	return outIntents, outEntities, nil
}

// TrainFromDefinition resolves, compiles and trains a full bot definition,
// recording the build in the audit log.
func (s *TrainerService) TrainFromDefinition(ctx context.Context, def *model.BotDefinition) (*model.TrainReport, error) {
	start := time.Now()

	intents, err := BuildIntentSpecs(def)
	if err != nil {
		return nil, err
	}
	compiledIntents, entities, err := s.CompileBatch(intents)
	if err != nil {
		s.logBuild(ctx, start, compiledIntents, entities, err)
		return nil, err
	}

	locale := def.Locale
	if locale == "" {
		locale = s.locale
	}
	corpus := model.NewAgentCorpus(locale, compiledIntents, entities)
	trainErr := s.engine.Train(ctx, corpus)
	s.logBuild(ctx, start, compiledIntents, entities, trainErr)
	if trainErr != nil {
		return nil, trainErr
	}

	report := &model.TrainReport{
		Agent:        s.agent,
		Status:       "trained",
		IntentCount:  len(compiledIntents),
		ExampleCount: exampleCount(compiledIntents),
		EntityCount:  len(entities),
		DurationMs:   int(time.Since(start).Milliseconds()),
		Intents:      compiledIntents,
		Entities:     entities,
	}
	return report, nil
}

// Status reports the engine's view of the agent.
func (s *TrainerService) Status(ctx context.Context) (*AgentStatus, error) {
	return s.engine.Status(ctx)
}

// Parse classifies a live utterance and records the outcome in the
// recognition log.
func (s *TrainerService) Parse(ctx context.Context, utterance string) (*ParseResult, error) {
	start := time.Now()
	result, err := s.engine.Parse(ctx, utterance)
	if err != nil {
		return nil, err
	}
	if s.repo != nil {
		rec := &model.RecognitionLog{
			Utterance:      utterance,
			MatchedIntent:  result.Intent,
			Confidence:     result.Score,
			ResponseTimeMs: int(time.Since(start).Milliseconds()),
		}
		if err := s.repo.LogRecognition(ctx, rec); err != nil {
			log.Printf("Warning: failed to log recognition: %v", err)
		}
	}
	return result, nil
}

// logBuild records a training attempt; storage failures are logged, not
// surfaced, so monitoring never blocks training.
func (s *TrainerService) logBuild(ctx context.Context, start time.Time, intents []model.CompiledIntent, entities []model.SynthesizedEntity, buildErr error) {
	if s.repo == nil {
		return
	}
	build := &model.TrainingBuild{
		Agent:        s.agent,
		Status:       "trained",
		IntentCount:  len(intents),
		ExampleCount: exampleCount(intents),
		EntityCount:  len(entities),
		DurationMs:   int(time.Since(start).Milliseconds()),
	}
	if buildErr != nil {
		build.Status = "failed"
		build.ErrorMessage = buildErr.Error()
	}
	if err := s.repo.LogTrainingBuild(ctx, build); err != nil {
		log.Printf("Warning: failed to log training build: %v", err)
	}
}

func exampleCount(intents []model.CompiledIntent) int {
	n := 0
	for _, in := range intents {
		n += len(in.Examples)
	}
	return n
}
