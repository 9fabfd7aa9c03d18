package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nlpbridge/internal/config"
	"nlpbridge/internal/model"
)

// EngineClient talks to the NLP.js training server's REST API.
type EngineClient struct {
	config     *config.EngineConfig
	httpClient *http.Client
}

// NewEngineClient creates a client for the configured agent
func NewEngineClient(cfg *config.EngineConfig) *EngineClient {
	return &EngineClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// AgentStatus is the engine's view of the agent.
type AgentStatus struct {
	AgentID      string `json:"agent_id"`
	Status       string `json:"status"`
	LastTraining string `json:"last_training,omitempty"`
}

// ParseRequest asks the engine to classify one utterance.
type ParseRequest struct {
	Utterance string `json:"utterance"`
	Locale    string `json:"locale,omitempty"`
}

// ParseResult is the engine's classification of an utterance.
type ParseResult struct {
	Utterance string  `json:"utterance"`
	Intent    string  `json:"intent"`
	Score     float64 `json:"score"`
	Entities  []struct {
		Entity string `json:"entity"`
		Value  string `json:"value"`
	} `json:"entities,omitempty"`
}

// Train submits a compiled corpus to the agent's training endpoint.
func (c *EngineClient) Train(ctx context.Context, corpus *model.AgentCorpus) error {
	body, err := json.Marshal(corpus)
	if err != nil {
		return fmt.Errorf("failed to encode training corpus: %w", err)
	}

	url := fmt.Sprintf("%s/agent/%s/train", c.config.BaseURL, c.config.AgentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build training request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("training request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engineError("train", resp)
	}
	return nil
}

// Status fetches the agent status.
func (c *EngineClient) Status(ctx context.Context) (*AgentStatus, error) {
	url := fmt.Sprintf("%s/agent/%s", c.config.BaseURL, c.config.AgentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, engineError("status", resp)
	}

	status := &AgentStatus{}
	if err := json.NewDecoder(resp.Body).Decode(status); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}
	return status, nil
}

// Parse sends a live utterance to the trained agent.
func (c *EngineClient) Parse(ctx context.Context, utterance string) (*ParseResult, error) {
	body, err := json.Marshal(ParseRequest{Utterance: utterance, Locale: c.config.Locale})
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse request: %w", err)
	}

	url := fmt.Sprintf("%s/agent/%s/process", c.config.BaseURL, c.config.AgentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build parse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parse request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, engineError("parse", resp)
	}

	result := &ParseResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("failed to decode parse response: %w", err)
	}
	return result, nil
}

// engineError surfaces a non-200 engine response with its body.
func engineError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("engine %s returned %s: %s", op, resp.Status, string(body))
}
