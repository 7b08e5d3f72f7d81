package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sandevgo/askgate/internal/config"
	"github.com/sandevgo/askgate/internal/core"
	"github.com/sandevgo/askgate/pkg/log"
)

type Ollama struct {
	baseProvider
	defaultModel string
}

func NewOllama(cfg *config.OllamaConfig) *Ollama {
	return &Ollama{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.Timeout),
		defaultModel: cfg.DefaultModel,
	}
}

// Generate asks the model a single question over the given context and
// returns the completed answer. Sampling is pinned near-greedy so the
// same question over the same context produces a stable answer.
func (o *Ollama) Generate(ctx context.Context, contextText, question, model string) (string, error) {
	if model == "" {
		model = o.defaultModel
	}

	prompt := fmt.Sprintf("Context: %s\n\nQuestion: %s", contextText, question)

	logger := log.FromCtx(ctx)
	logger.Info().Str("model", model).Msg("generating response")
	// Token counting loads the BPE vocabulary, so only pay for it when
	// debug logging is on
	if e := logger.Debug(); e.Enabled() {
		e.Int("prompt_tokens", estimateTokens(prompt)).Str("prompt", prompt).Msg("built prompt")
	}

	payload := map[string]any{
		"model":  model,
		"prompt": prompt,
		"options": map[string]any{
			"top_k":       1,
			"top_p":       0.1,
			"temperature": 0.1,
		},
		"stream": false,
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/api/generate", payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", core.ErrBackendTimeout
		}
		return "", fmt.Errorf("%w: %v", core.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &core.BackendError{Status: resp.StatusCode, Body: string(data)}
	}

	// A missing "response" field is an empty answer, not an error
	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return result.Response, nil
}
