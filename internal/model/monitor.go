package model

import "time"

// TrainingBuild is one row of the training audit log.
type TrainingBuild struct {
	ID           int64     `db:"id" json:"id"`
	Agent        string    `db:"agent" json:"agent"`
	Status       string    `db:"status" json:"status"`
	IntentCount  int       `db:"intent_count" json:"intent_count"`
	ExampleCount int       `db:"example_count" json:"example_count"`
	EntityCount  int       `db:"entity_count" json:"entity_count"`
	DurationMs   int       `db:"duration_ms" json:"duration_ms"`
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RecognitionLog is one row of the recognition monitor: a live utterance and
// what the engine made of it.
type RecognitionLog struct {
	ID             int64     `db:"id" json:"id"`
	Utterance      string    `db:"utterance" json:"utterance"`
	MatchedIntent  string    `db:"matched_intent" json:"matched_intent"`
	Confidence     float64   `db:"confidence" json:"confidence"`
	ResponseTimeMs int       `db:"response_time_ms" json:"response_time_ms"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// IntentStats aggregates the recognition log per matched intent.
type IntentStats struct {
	MatchedIntent string  `db:"matched_intent" json:"matched_intent"`
	Count         int     `db:"count" json:"count"`
	AvgConfidence float64 `db:"avg_confidence" json:"avg_confidence"`
}

// RecognitionAnalytics is the monitoring summary returned by the REST API.
type RecognitionAnalytics struct {
	TotalRecognitions int           `json:"total_recognitions"`
	UnmatchedCount    int           `json:"unmatched_count"`
	PerIntent         []IntentStats `json:"per_intent"`
}

// ExampleEmbeddingItem is one precomputed example vector accepted over the
// batch embeddings endpoint.
type ExampleEmbeddingItem struct {
	IntentName string    `json:"intent_name" binding:"required"`
	Example    string    `json:"example" binding:"required"`
	Embedding  []float32 `json:"embedding" binding:"required"`
}

// EmbeddingBatchRequest carries a batch of precomputed example vectors.
type EmbeddingBatchRequest struct {
	Embeddings []ExampleEmbeddingItem `json:"embeddings"`
}

// SimilarExample is one nearest-neighbor hit for a probe vector.
type SimilarExample struct {
	IntentName string  `db:"intent_name" json:"intent_name"`
	Example    string  `db:"example" json:"example"`
	Distance   float64 `db:"distance" json:"distance"`
}

// SimilarExamplesRequest asks for the training examples closest to a probe
// vector (typically the embedding of an unmatched utterance).
type SimilarExamplesRequest struct {
	Embedding []float32 `json:"embedding" binding:"required"`
	Limit     int       `json:"limit"`
}
