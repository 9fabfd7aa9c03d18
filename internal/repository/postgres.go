package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nlpbridge/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// LogTrainingBuild records one compile-and-train run
func (r *PostgresRepository) LogTrainingBuild(ctx context.Context, build *model.TrainingBuild) error {
	query := `
		INSERT INTO training_builds (agent, status, intent_count, example_count, entity_count, duration_ms, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		build.Agent, build.Status, build.IntentCount, build.ExampleCount,
		build.EntityCount, build.DurationMs, build.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to log training build: %w", err)
	}
	return nil
}

// RecentTrainingBuilds returns the latest build audit rows
func (r *PostgresRepository) RecentTrainingBuilds(ctx context.Context, limit int) ([]model.TrainingBuild, error) {
	query := `
		SELECT id, agent, status, intent_count, example_count, entity_count, duration_ms, error_message, created_at
		FROM training_builds
		ORDER BY created_at DESC
		LIMIT $1
	`
	var builds []model.TrainingBuild
	if err := r.db.SelectContext(ctx, &builds, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch training builds: %w", err)
	}
	return builds, nil
}

// LogRecognition records one live utterance and the engine's classification
func (r *PostgresRepository) LogRecognition(ctx context.Context, rec *model.RecognitionLog) error {
	query := `
		INSERT INTO recognition_logs (utterance, matched_intent, confidence, response_time_ms)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, rec.Utterance, rec.MatchedIntent, rec.Confidence, rec.ResponseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log recognition: %w", err)
	}
	return nil
}

// RecentRecognitions returns the latest recognition log rows
func (r *PostgresRepository) RecentRecognitions(ctx context.Context, limit int) ([]model.RecognitionLog, error) {
	query := `
		SELECT id, utterance, matched_intent, confidence, response_time_ms, created_at
		FROM recognition_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	var logs []model.RecognitionLog
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch recognition logs: %w", err)
	}
	return logs, nil
}

// RecognitionAnalytics aggregates the recognition log per matched intent.
// Rows with an empty matched_intent count as unmatched.
func (r *PostgresRepository) RecognitionAnalytics(ctx context.Context) (*model.RecognitionAnalytics, error) {
	analytics := &model.RecognitionAnalytics{}

	totalQuery := `SELECT COUNT(*) FROM recognition_logs`
	if err := r.db.GetContext(ctx, &analytics.TotalRecognitions, totalQuery); err != nil {
		return nil, fmt.Errorf("failed to count recognitions: %w", err)
	}

	unmatchedQuery := `SELECT COUNT(*) FROM recognition_logs WHERE matched_intent = '' OR matched_intent = 'None'`
	if err := r.db.GetContext(ctx, &analytics.UnmatchedCount, unmatchedQuery); err != nil {
		return nil, fmt.Errorf("failed to count unmatched recognitions: %w", err)
	}

	perIntentQuery := `
		SELECT matched_intent, COUNT(*) AS count, AVG(confidence) AS avg_confidence
		FROM recognition_logs
		WHERE matched_intent <> '' AND matched_intent <> 'None'
		GROUP BY matched_intent
		ORDER BY count DESC
	`
	if err := r.db.SelectContext(ctx, &analytics.PerIntent, perIntentQuery); err != nil {
		return nil, fmt.Errorf("failed to aggregate recognitions: %w", err)
	}

	return analytics, nil
}

// BatchUpsertExampleEmbeddings stores precomputed example vectors
func (r *PostgresRepository) BatchUpsertExampleEmbeddings(ctx context.Context, items []model.ExampleEmbeddingItem) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO example_embeddings (intent_name, example, embedding, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (intent_name, example)
		DO UPDATE SET embedding = EXCLUDED.embedding, updated_at = NOW()
	`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		if _, err := stmt.ExecContext(ctx, item.IntentName, item.Example, vec); err != nil {
			errors = append(errors, fmt.Sprintf("intent %s example %q: %v", item.IntentName, item.Example, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// SimilarExamples returns the training examples closest to the probe vector
func (r *PostgresRepository) SimilarExamples(ctx context.Context, embedding []float32, limit int) ([]model.SimilarExample, error) {
	vec := pgvector.NewVector(embedding)
	query := `
		SELECT intent_name, example, embedding <=> $1 AS distance
		FROM example_embeddings
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	var examples []model.SimilarExample
	if err := r.db.SelectContext(ctx, &examples, query, vec, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch similar examples: %w", err)
	}
	return examples, nil
}
